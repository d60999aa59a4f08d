package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type ShareData struct {
	Label   string
	Count   int
	Percent int
	BarView string
}

// DayData.Intensity runs 0 (none) to 3 (high).
type DayData struct {
	Label     string
	Count     int
	Intensity int
}

type HourData struct {
	Label string
	Count int
}

type DashboardPanelData struct {
	Total     int
	Shares    []ShareData
	Days      []DayData
	PeakHours []HourData
}

var heatColors = []lipgloss.Color{"237", "22", "28", "40"}

func RenderDashboardPanel(data DashboardPanelData) string {
	var b strings.Builder
	b.WriteString("dashboard:\n")
	b.WriteString(fmt.Sprintf("%d tasks completed\n", data.Total))
	if data.Total == 0 {
		b.WriteString(mutedStyle.Render("Complete a task to start building your patterns.") + "\n")
	}

	b.WriteString("\nby context:\n")
	for _, s := range data.Shares {
		b.WriteString(fmt.Sprintf("%-18s %s %3d%% (%d)\n", s.Label, s.BarView, s.Percent, s.Count))
	}

	b.WriteString("\nlast 7 days:\n")
	b.WriteString(RenderHeatmap(data.Days) + "\n")

	if len(data.PeakHours) > 0 {
		b.WriteString("\npeak hours:\n")
		for _, h := range data.PeakHours {
			b.WriteString(fmt.Sprintf("  %-5s %d\n", h.Label, h.Count))
		}
	}
	return strings.TrimSpace(b.String())
}

// RenderHeatmap draws one cell per day, oldest first, shaded by intensity.
func RenderHeatmap(days []DayData) string {
	labels := make([]string, 0, len(days))
	cells := make([]string, 0, len(days))
	counts := make([]string, 0, len(days))
	for _, d := range days {
		level := d.Intensity
		if level < 0 {
			level = 0
		}
		if level >= len(heatColors) {
			level = len(heatColors) - 1
		}
		cell := lipgloss.NewStyle().Foreground(heatColors[level]).Render("███")
		labels = append(labels, fmt.Sprintf("%-3.3s", d.Label))
		cells = append(cells, cell)
		counts = append(counts, fmt.Sprintf("%3d", d.Count))
	}
	return strings.Join([]string{
		strings.Join(labels, " "),
		strings.Join(cells, " "),
		strings.Join(counts, " "),
	}, "\n")
}
