package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidContext  = errors.New("model: invalid task context")
	ErrInvalidDuration = errors.New("model: invalid task duration")
)

type TaskContext string

const (
	ContextQuick     TaskContext = "quick"
	ContextFocused   TaskContext = "focused"
	ContextLowEnergy TaskContext = "low-energy"
)

// Contexts lists every context in display order.
var Contexts = []TaskContext{ContextQuick, ContextFocused, ContextLowEnergy}

func (c TaskContext) IsValid() bool {
	switch c {
	case ContextQuick, ContextFocused, ContextLowEnergy:
		return true
	default:
		return false
	}
}

func (c TaskContext) Label() string {
	switch c {
	case ContextQuick:
		return "Quick"
	case ContextFocused:
		return "Focused"
	case ContextLowEnergy:
		return "Low-energy"
	default:
		return string(c)
	}
}

func (c TaskContext) Description() string {
	switch c {
	case ContextQuick:
		return "15 minutes or less"
	case ContextFocused:
		return "Deep work"
	case ContextLowEnergy:
		return "Easy wins"
	default:
		return ""
	}
}

func ParseContext(raw string) (TaskContext, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "low", "lowenergy", "low_energy":
		normalized = string(ContextLowEnergy)
	case "q":
		normalized = string(ContextQuick)
	case "f":
		normalized = string(ContextFocused)
	}
	c := TaskContext(normalized)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidContext, raw)
	}
	return c, nil
}

// Duration bounds are advisory; the form snaps to them, storage does not.
const (
	MinDurationMinutes     = 5
	MaxDurationMinutes     = 120
	DurationStepMinutes    = 5
	DefaultDurationMinutes = 15
)

// SnapDuration clamps minutes into the form range and rounds to the nearest step.
func SnapDuration(minutes int) int {
	if minutes < MinDurationMinutes {
		return MinDurationMinutes
	}
	if minutes > MaxDurationMinutes {
		return MaxDurationMinutes
	}
	return (minutes + DurationStepMinutes/2) / DurationStepMinutes * DurationStepMinutes
}

type Task struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Context     TaskContext `json:"context"`
	Tags        []string    `json:"tags"`
	Duration    int         `json:"duration"`
	Note        string      `json:"note,omitempty"`
	Completed   bool        `json:"completed"`
	CreatedAt   time.Time   `json:"createdAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Context.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidContext, t.Context)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, t.Duration)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil when task is not completed")
	}
	return nil
}

// NewTask builds an open task with a fresh id. Title and note are trimmed and
// tags normalised.
func NewTask(title string, c TaskContext, duration int, tags []string, note string, now time.Time) Task {
	return Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Context:   c,
		Tags:      NormalizeTags(tags),
		Duration:  duration,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
	}
}

// TaskPatch is a shallow partial update. Nil fields leave the task untouched.
type TaskPatch struct {
	Title       *string
	Context     *TaskContext
	Duration    *int
	Tags        []string
	SetTags     bool
	Note        *string
	Completed   *bool
	CompletedAt *time.Time
}

// CompletionPatch marks a task done at the given instant.
func CompletionPatch(at time.Time) TaskPatch {
	done := true
	return TaskPatch{Completed: &done, CompletedAt: &at}
}

// MarksCompletion reports whether the patch itself carries a completion
// transition, which is what triggers stats aggregation.
func (p TaskPatch) MarksCompletion() bool {
	return p.Completed != nil && *p.Completed && p.CompletedAt != nil
}

func (p TaskPatch) Apply(t Task) Task {
	out := t
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Context != nil {
		out.Context = *p.Context
	}
	if p.Duration != nil {
		out.Duration = *p.Duration
	}
	if p.SetTags {
		out.Tags = NormalizeTags(p.Tags)
	}
	if p.Note != nil {
		out.Note = strings.TrimSpace(*p.Note)
	}
	if p.Completed != nil {
		out.Completed = *p.Completed
	}
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		out.CompletedAt = &at
	}
	if !out.Completed {
		out.CompletedAt = nil
	}
	return out
}

// NormalizeTags trims tags, drops empties and keeps the first occurrence of
// each duplicate.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (t Task) HasTag(tag string) bool {
	for _, item := range t.Tags {
		if item == tag {
			return true
		}
	}
	return false
}
