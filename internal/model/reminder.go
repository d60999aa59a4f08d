package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidReminderWindow = errors.New("model: invalid reminder window")

type ReminderWindow string

const (
	WindowMorning   ReminderWindow = "morning"
	WindowAfternoon ReminderWindow = "afternoon"
	WindowEvening   ReminderWindow = "evening"
	WindowAnytime   ReminderWindow = "anytime"
)

var ReminderWindows = []ReminderWindow{WindowMorning, WindowAfternoon, WindowEvening, WindowAnytime}

func (w ReminderWindow) IsValid() bool {
	switch w {
	case WindowMorning, WindowAfternoon, WindowEvening, WindowAnytime:
		return true
	default:
		return false
	}
}

func ParseReminderWindow(raw string) (ReminderWindow, error) {
	w := ReminderWindow(strings.ToLower(strings.TrimSpace(raw)))
	if !w.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidReminderWindow, raw)
	}
	return w, nil
}

// Next cycles through the windows in display order.
func (w ReminderWindow) Next(step int) ReminderWindow {
	idx := 0
	for i, item := range ReminderWindows {
		if item == w {
			idx = i
			break
		}
	}
	n := len(ReminderWindows)
	return ReminderWindows[((idx+step)%n+n)%n]
}

type ReminderSettings struct {
	Enabled       bool           `json:"enabled"`
	Window        ReminderWindow `json:"window"`
	LastDismissed *time.Time     `json:"lastDismissed,omitempty"`
	LastShown     *time.Time     `json:"lastShown,omitempty"`
}

func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{Enabled: true, Window: WindowAnytime}
}

func (s ReminderSettings) Validate() error {
	if !s.Window.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidReminderWindow, s.Window)
	}
	return nil
}
