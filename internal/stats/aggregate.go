// Package stats folds task completions into the CompletionStats ledger and
// derives the dashboard figures from it.
package stats

import (
	"time"

	"github.com/sandeepkv93/contexttasks/internal/model"
)

// Record returns s with one completion of t folded in. Day and hour buckets
// are taken from t.CompletedAt in loc. A task without a completion time is
// ignored.
func Record(s model.CompletionStats, t model.Task, loc *time.Location) model.CompletionStats {
	if t.CompletedAt == nil {
		return s
	}
	if loc == nil {
		loc = time.Local
	}
	out := s.Clone()
	at := t.CompletedAt.In(loc)

	out.Total++
	out.ByContext[t.Context]++
	out.ByDay[at.Format(model.DayKeyLayout)]++
	out.ByHour[at.Hour()]++
	return out
}

// CompletedOn returns the completed tasks whose completion falls on the local
// calendar day of day.
func CompletedOn(tasks []model.Task, day time.Time, loc *time.Location) []model.Task {
	if loc == nil {
		loc = time.Local
	}
	key := day.In(loc).Format(model.DayKeyLayout)
	out := make([]model.Task, 0)
	for _, task := range tasks {
		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		if task.CompletedAt.In(loc).Format(model.DayKeyLayout) == key {
			out = append(out, task)
		}
	}
	return out
}
