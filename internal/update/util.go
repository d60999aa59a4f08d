package update

import "fmt"

// formatMinutes renders an estimate as "45m" or "1h 30m".
func formatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	h := total / 60
	min := total % 60
	if h == 0 {
		return fmt.Sprintf("%dm", min)
	}
	return fmt.Sprintf("%dh %dm", h, min)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
