// Package reminder decides when the "tasks ready for you" banner is shown.
package reminder

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sandeepkv93/contexttasks/internal/model"
)

// Cooldown is the minimum time between a dismissal and the next banner.
const Cooldown = 12 * time.Hour

type window struct {
	start int
	end   int
	open  string
}

var windows = map[model.ReminderWindow]window{
	model.WindowMorning:   {start: 6, end: 12, open: "0 6 * * *"},
	model.WindowAfternoon: {start: 12, end: 18, open: "0 12 * * *"},
	model.WindowEvening:   {start: 18, end: 24, open: "0 18 * * *"},
}

type Input struct {
	Settings model.ReminderSettings
	View     model.View
	Tasks    []model.Task
	// Now must already be in the user's local zone; the window check uses Now.Hour().
	Now time.Time
}

// ShouldShow reports whether the banner is eligible right now.
func ShouldShow(in Input) bool {
	if !in.Settings.Enabled {
		return false
	}
	if in.View != model.ViewContextPicker {
		return false
	}
	if !hasOpenTask(in.Tasks) {
		return false
	}
	if !InWindow(in.Settings.Window, in.Now.Hour()) {
		return false
	}
	return cooledDown(in.Settings, in.Now)
}

// WindowBounds returns the [start, end) hours of a window. Anytime and
// unknown windows report ok=false.
func WindowBounds(w model.ReminderWindow) (start, end int, ok bool) {
	win, found := windows[w]
	if !found {
		return 0, 0, false
	}
	return win.start, win.end, true
}

func InWindow(w model.ReminderWindow, hour int) bool {
	if w == model.WindowAnytime {
		return true
	}
	start, end, ok := WindowBounds(w)
	if !ok {
		return false
	}
	return hour >= start && hour < end
}

// Dismiss stamps the dismissal time and leaves everything else untouched.
func Dismiss(s model.ReminderSettings, now time.Time) model.ReminderSettings {
	out := s
	at := now
	out.LastDismissed = &at
	return out
}

// NextOpportunity returns the earliest instant at or after now at which the
// time-based conditions (window and cooldown) hold. It returns false when
// reminders are disabled.
func NextOpportunity(s model.ReminderSettings, now time.Time) (time.Time, bool) {
	if !s.Enabled {
		return time.Time{}, false
	}
	candidate := now
	if s.LastDismissed != nil {
		if until := s.LastDismissed.Add(Cooldown); until.After(candidate) {
			candidate = until.In(now.Location())
		}
	}
	if InWindow(s.Window, candidate.Hour()) {
		return candidate, true
	}
	win, ok := windows[s.Window]
	if !ok {
		return time.Time{}, false
	}
	schedule, err := cron.ParseStandard(win.open)
	if err != nil {
		return time.Time{}, false
	}
	return schedule.Next(candidate), true
}

func hasOpenTask(tasks []model.Task) bool {
	for _, task := range tasks {
		if !task.Completed {
			return true
		}
	}
	return false
}

func cooledDown(s model.ReminderSettings, now time.Time) bool {
	if s.LastDismissed == nil {
		return true
	}
	return now.Sub(*s.LastDismissed) >= Cooldown
}

// OpenTaskCount is the number shown on the banner.
func OpenTaskCount(tasks []model.Task) int {
	n := 0
	for _, task := range tasks {
		if !task.Completed {
			n++
		}
	}
	return n
}
