package reminder

import (
	"testing"
	"time"

	"github.com/sandeepkv93/contexttasks/internal/model"
)

func openTasks() []model.Task {
	return []model.Task{{ID: "t1", Title: "Email client", Context: model.ContextQuick, Duration: 10}}
}

func morningInput(hour int) Input {
	return Input{
		Settings: model.ReminderSettings{Enabled: true, Window: model.WindowMorning},
		View:     model.ViewContextPicker,
		Tasks:    openTasks(),
		Now:      time.Date(2024, 1, 5, hour, 0, 0, 0, time.UTC),
	}
}

func TestShouldShowMorningWindow(t *testing.T) {
	if !ShouldShow(morningInput(8)) {
		t.Fatal("expected reminder at 08:00 in morning window")
	}
	if ShouldShow(morningInput(14)) {
		t.Fatal("expected no reminder at 14:00 in morning window")
	}
}

func TestShouldShowRespectsCooldown(t *testing.T) {
	in := morningInput(8)
	hourAgo := in.Now.Add(-time.Hour)
	in.Settings.LastDismissed = &hourAgo
	if ShouldShow(in) {
		t.Fatal("expected no reminder one hour after dismissal")
	}

	in.Settings.Window = model.WindowAnytime
	if ShouldShow(in) {
		t.Fatal("cooldown must apply regardless of window match")
	}

	exactly := in.Now.Add(-Cooldown)
	in.Settings.LastDismissed = &exactly
	if !ShouldShow(in) {
		t.Fatal("expected reminder once the full cooldown elapsed")
	}
}

func TestShouldShowRequiresEveryCondition(t *testing.T) {
	in := morningInput(8)
	in.Settings.Enabled = false
	if ShouldShow(in) {
		t.Fatal("disabled reminders must not show")
	}

	in = morningInput(8)
	in.View = model.ViewTaskList
	if ShouldShow(in) {
		t.Fatal("reminder must only show on the context picker")
	}

	in = morningInput(8)
	done := in.Now
	in.Tasks = []model.Task{{ID: "t1", Completed: true, CompletedAt: &done}}
	if ShouldShow(in) {
		t.Fatal("reminder needs at least one open task")
	}

	in = morningInput(8)
	in.Tasks = nil
	if ShouldShow(in) {
		t.Fatal("reminder needs tasks")
	}
}

func TestInWindowBoundaries(t *testing.T) {
	cases := []struct {
		w    model.ReminderWindow
		hour int
		want bool
	}{
		{model.WindowMorning, 5, false},
		{model.WindowMorning, 6, true},
		{model.WindowMorning, 11, true},
		{model.WindowMorning, 12, false},
		{model.WindowAfternoon, 12, true},
		{model.WindowAfternoon, 17, true},
		{model.WindowAfternoon, 18, false},
		{model.WindowEvening, 18, true},
		{model.WindowEvening, 23, true},
		{model.WindowEvening, 0, false},
		{model.WindowAnytime, 3, true},
		{model.ReminderWindow("night"), 3, false},
	}
	for _, tc := range cases {
		if got := InWindow(tc.w, tc.hour); got != tc.want {
			t.Fatalf("InWindow(%s, %d) = %v, want %v", tc.w, tc.hour, got, tc.want)
		}
	}
}

func TestDismissOnlyStampsTime(t *testing.T) {
	s := model.ReminderSettings{Enabled: true, Window: model.WindowEvening}
	now := time.Date(2024, 1, 5, 19, 0, 0, 0, time.UTC)
	got := Dismiss(s, now)
	if got.LastDismissed == nil || !got.LastDismissed.Equal(now) {
		t.Fatalf("expected last dismissed stamped: %+v", got)
	}
	if !got.Enabled || got.Window != model.WindowEvening {
		t.Fatalf("dismiss changed settings: %+v", got)
	}
	if s.LastDismissed != nil {
		t.Fatal("dismiss mutated input")
	}
}

func TestNextOpportunity(t *testing.T) {
	now := time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)

	s := model.ReminderSettings{Enabled: true, Window: model.WindowMorning}
	next, ok := NextOpportunity(s, now)
	if !ok || !next.Equal(time.Date(2024, 1, 6, 6, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected next morning 06:00, got %v ok=%v", next, ok)
	}

	s.Window = model.WindowAfternoon
	next, ok = NextOpportunity(s, now)
	if !ok || !next.Equal(now) {
		t.Fatalf("expected now inside afternoon window, got %v", next)
	}

	dismissed := now.Add(-time.Hour)
	s.LastDismissed = &dismissed
	next, ok = NextOpportunity(s, now)
	if !ok || !next.Equal(time.Date(2024, 1, 6, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected cooldown to push into next afternoon, got %v", next)
	}

	s.Window = model.WindowAnytime
	next, ok = NextOpportunity(s, now)
	if !ok || !next.Equal(dismissed.Add(Cooldown)) {
		t.Fatalf("expected cooldown end for anytime, got %v", next)
	}

	s.Enabled = false
	if _, ok := NextOpportunity(s, now); ok {
		t.Fatal("expected no opportunity when disabled")
	}
}

func TestOpenTaskCount(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{{ID: "a"}, {ID: "b", Completed: true, CompletedAt: &now}, {ID: "c"}}
	if got := OpenTaskCount(tasks); got != 2 {
		t.Fatalf("expected 2 open tasks, got %d", got)
	}
}
