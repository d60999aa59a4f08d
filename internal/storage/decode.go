package storage

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/sandeepkv93/contexttasks/internal/model"
)

// The Decode functions map a raw record read to a usable value. The second
// result is the reason a present record was thrown away; absent records
// return their default with a nil reason.

func DecodeTasks(raw string, readErr error) ([]model.Task, error) {
	if absent(raw, readErr) {
		return []model.Task{}, nil
	}
	if readErr != nil {
		return []model.Task{}, readErr
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return []model.Task{}, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func DecodeReminderSettings(raw string, readErr error) (model.ReminderSettings, error) {
	if absent(raw, readErr) {
		return model.DefaultReminderSettings(), nil
	}
	if readErr != nil {
		return model.DefaultReminderSettings(), readErr
	}
	var settings model.ReminderSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return model.DefaultReminderSettings(), err
	}
	if err := settings.Validate(); err != nil {
		return model.DefaultReminderSettings(), err
	}
	return settings, nil
}

func DecodeStats(raw string, readErr error) (model.CompletionStats, error) {
	if absent(raw, readErr) {
		return model.NewCompletionStats(), nil
	}
	if readErr != nil {
		return model.NewCompletionStats(), readErr
	}
	var decoded model.CompletionStats
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return model.NewCompletionStats(), err
	}
	// Clone fills in any map or context key the stored record lacks.
	return decoded.Clone(), nil
}

func absent(raw string, readErr error) bool {
	if errors.Is(readErr, ErrNotFound) {
		return true
	}
	return readErr == nil && strings.TrimSpace(raw) == ""
}
