package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sandeepkv93/contexttasks/internal/model"
	"github.com/sandeepkv93/contexttasks/internal/stats"
)

const (
	TasksRecord    = "contexttasks_tasks"
	ReminderRecord = "contexttasks_reminder_settings"
	StatsRecord    = "contexttasks_stats"
)

// Gateway owns the three persisted records. Reads never fail: a missing or
// unreadable record resolves to its default. Writes report KV failures.
//
// Every operation is a read-modify-write against the KV with no locking; a
// Gateway assumes it is the only writer.
type Gateway struct {
	kv     KV
	loc    *time.Location
	logger *log.Logger
}

type Option func(*Gateway)

// WithLocation sets the zone used for day/hour stats buckets.
func WithLocation(loc *time.Location) Option {
	return func(g *Gateway) {
		if loc != nil {
			g.loc = loc
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGateway(kv KV, opts ...Option) *Gateway {
	g := &Gateway{
		kv:     kv,
		loc:    time.Local,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) GetTasks(ctx context.Context) []model.Task {
	raw, err := g.kv.Get(ctx, TasksRecord)
	tasks, discarded := DecodeTasks(raw, err)
	if discarded != nil {
		g.logger.Printf("storage: discarding unreadable %s record: %v", TasksRecord, discarded)
	}
	return tasks
}

func (g *Gateway) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return g.put(ctx, TasksRecord, tasks)
}

// AddTask appends task. ID uniqueness is the caller's responsibility.
func (g *Gateway) AddTask(ctx context.Context, task model.Task) error {
	task.Tags = model.NormalizeTags(task.Tags)
	tasks := g.GetTasks(ctx)
	tasks = append(tasks, task)
	return g.SaveTasks(ctx, tasks)
}

// UpdateTask merges patch into the task with the given id. Unknown ids are a
// silent no-op. A patch that carries both Completed=true and CompletedAt
// folds the merged task into the stats ledger, even if it was already
// completed. The ledger is only touched once the task list is written.
func (g *Gateway) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) error {
	tasks := g.GetTasks(ctx)
	idx := indexOf(tasks, id)
	if idx < 0 {
		return nil
	}
	tasks[idx] = patch.Apply(tasks[idx])
	if err := g.SaveTasks(ctx, tasks); err != nil {
		return err
	}
	if patch.MarksCompletion() {
		return g.recordCompletion(ctx, tasks[idx])
	}
	return nil
}

func (g *Gateway) CompleteTask(ctx context.Context, id string, at time.Time) error {
	return g.UpdateTask(ctx, id, model.CompletionPatch(at))
}

func (g *Gateway) DeleteTask(ctx context.Context, id string) error {
	tasks := g.GetTasks(ctx)
	idx := indexOf(tasks, id)
	if idx < 0 {
		return nil
	}
	tasks = append(tasks[:idx:idx], tasks[idx+1:]...)
	return g.SaveTasks(ctx, tasks)
}

func (g *Gateway) GetReminderSettings(ctx context.Context) model.ReminderSettings {
	raw, err := g.kv.Get(ctx, ReminderRecord)
	settings, discarded := DecodeReminderSettings(raw, err)
	if discarded != nil {
		g.logger.Printf("storage: discarding unreadable %s record: %v", ReminderRecord, discarded)
	}
	return settings
}

func (g *Gateway) SaveReminderSettings(ctx context.Context, settings model.ReminderSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return g.put(ctx, ReminderRecord, settings)
}

func (g *Gateway) GetStats(ctx context.Context) model.CompletionStats {
	raw, err := g.kv.Get(ctx, StatsRecord)
	s, discarded := DecodeStats(raw, err)
	if discarded != nil {
		g.logger.Printf("storage: discarding unreadable %s record: %v", StatsRecord, discarded)
	}
	return s
}

func (g *Gateway) recordCompletion(ctx context.Context, task model.Task) error {
	next := stats.Record(g.GetStats(ctx), task, g.loc)
	return g.put(ctx, StatsRecord, next)
}

// ClearAll removes every record; later reads return defaults.
func (g *Gateway) ClearAll(ctx context.Context) error {
	return g.kv.Delete(ctx, TasksRecord, ReminderRecord, StatsRecord)
}

func (g *Gateway) put(ctx context.Context, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := g.kv.Set(ctx, name, string(payload)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func indexOf(tasks []model.Task, id string) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}
