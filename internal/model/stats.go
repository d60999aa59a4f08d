package model

// DayKeyLayout is the calendar-date key used in CompletionStats.ByDay.
const DayKeyLayout = "2006-01-02"

type CompletionStats struct {
	Total     int                 `json:"total"`
	ByContext map[TaskContext]int `json:"byContext"`
	ByDay     map[string]int      `json:"byDay"`
	ByHour    map[int]int         `json:"byHour"`
}

func NewCompletionStats() CompletionStats {
	return CompletionStats{
		ByContext: map[TaskContext]int{
			ContextQuick:     0,
			ContextFocused:   0,
			ContextLowEnergy: 0,
		},
		ByDay:  map[string]int{},
		ByHour: map[int]int{},
	}
}

// Clone returns a deep copy; the maps are never shared with the receiver.
func (s CompletionStats) Clone() CompletionStats {
	out := NewCompletionStats()
	out.Total = s.Total
	for k, v := range s.ByContext {
		out.ByContext[k] = v
	}
	for k, v := range s.ByDay {
		out.ByDay[k] = v
	}
	for k, v := range s.ByHour {
		out.ByHour[k] = v
	}
	return out
}
