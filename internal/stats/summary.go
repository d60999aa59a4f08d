package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/sandeepkv93/contexttasks/internal/model"
)

type Intensity int

const (
	IntensityNone Intensity = iota
	IntensityLow
	IntensityMedium
	IntensityHigh
)

type ContextShare struct {
	Context model.TaskContext
	Count   int
	Percent float64
}

type DayCount struct {
	Day       string
	Weekday   string
	Count     int
	Intensity Intensity
}

type HourCount struct {
	Hour  int
	Label string
	Count int
}

type Summary struct {
	Total     int
	Contexts  []ContextShare
	LastWeek  []DayCount
	PeakHours []HourCount
}

const peakHourLimit = 3

func Summarize(s model.CompletionStats, now time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.Local
	}
	out := Summary{Total: s.Total}

	for _, c := range model.Contexts {
		count := s.ByContext[c]
		pct := 0.0
		if s.Total > 0 {
			pct = float64(count) / float64(s.Total) * 100
		}
		out.Contexts = append(out.Contexts, ContextShare{Context: c, Count: count, Percent: pct})
	}

	today := now.In(loc)
	maxCount := 1
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format(model.DayKeyLayout)
		count := s.ByDay[key]
		if count > maxCount {
			maxCount = count
		}
		out.LastWeek = append(out.LastWeek, DayCount{Day: key, Weekday: day.Format("Mon"), Count: count})
	}
	for i := range out.LastWeek {
		out.LastWeek[i].Intensity = intensityFor(out.LastWeek[i].Count, maxCount)
	}

	hours := make([]HourCount, 0, len(s.ByHour))
	for hour, count := range s.ByHour {
		if count <= 0 {
			continue
		}
		hours = append(hours, HourCount{Hour: hour, Label: HourLabel(hour), Count: count})
	}
	sort.Slice(hours, func(i, j int) bool {
		if hours[i].Count != hours[j].Count {
			return hours[i].Count > hours[j].Count
		}
		return hours[i].Hour < hours[j].Hour
	})
	if len(hours) > peakHourLimit {
		hours = hours[:peakHourLimit]
	}
	out.PeakHours = hours
	return out
}

func intensityFor(count, maxCount int) Intensity {
	if count <= 0 || maxCount <= 0 {
		return IntensityNone
	}
	ratio := float64(count) / float64(maxCount)
	switch {
	case ratio > 0.7:
		return IntensityHigh
	case ratio > 0.4:
		return IntensityMedium
	default:
		return IntensityLow
	}
}

// HourLabel renders an hour of day on a 12-hour clock, e.g. 0 -> "12AM".
func HourLabel(hour int) string {
	h := hour % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d%s", h, suffix)
}
