package storage

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/contexttasks/internal/model"
)

func setupGateway(t *testing.T) (*Gateway, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	return NewGateway(kv, WithLocation(time.UTC)), kv
}

func newTask(id string, c model.TaskContext, created time.Time) model.Task {
	return model.Task{ID: id, Title: "task " + id, Context: c, Duration: 10, CreatedAt: created}
}

func ids(tasks []model.Task) string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return strings.Join(out, ",")
}

func TestGatewayDefaultsWhenEmpty(t *testing.T) {
	g, _ := setupGateway(t)
	ctx := context.Background()

	if tasks := g.GetTasks(ctx); tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty non-nil tasks, got %#v", tasks)
	}
	settings := g.GetReminderSettings(ctx)
	if !settings.Enabled || settings.Window != model.WindowAnytime {
		t.Fatalf("unexpected default settings: %+v", settings)
	}
	s := g.GetStats(ctx)
	if s.Total != 0 || len(s.ByContext) != 3 || s.ByDay == nil || s.ByHour == nil {
		t.Fatalf("unexpected default stats: %#v", s)
	}
}

func TestGatewayReplayPreservesInsertionOrder(t *testing.T) {
	g, _ := setupGateway(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)

	for _, id := range []string{"a", "b", "c", "d"} {
		if err := g.AddTask(ctx, newTask(id, model.ContextQuick, created)); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	if err := g.DeleteTask(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	title := "renamed"
	if err := g.UpdateTask(ctx, "c", model.TaskPatch{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := g.AddTask(ctx, newTask("e", model.ContextFocused, created)); err != nil {
		t.Fatalf("add e: %v", err)
	}

	tasks := g.GetTasks(ctx)
	if got := ids(tasks); got != "a,c,d,e" {
		t.Fatalf("unexpected order: %s", got)
	}
	if tasks[1].Title != "renamed" {
		t.Fatalf("expected update applied: %#v", tasks[1])
	}
}

func TestGatewayUnknownIDsAreNoOps(t *testing.T) {
	g, kv := setupGateway(t)
	ctx := context.Background()
	if err := g.AddTask(ctx, newTask("a", model.ContextQuick, time.Now())); err != nil {
		t.Fatalf("add: %v", err)
	}
	before, _ := kv.Get(ctx, TasksRecord)

	title := "x"
	if err := g.UpdateTask(ctx, "missing", model.TaskPatch{Title: &title}); err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if err := g.DeleteTask(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if err := g.CompleteTask(ctx, "missing", time.Now()); err != nil {
		t.Fatalf("complete missing: %v", err)
	}
	after, _ := kv.Get(ctx, TasksRecord)
	if before != after {
		t.Fatalf("record changed by no-op:\n%s\n%s", before, after)
	}
	if g.GetStats(ctx).Total != 0 {
		t.Fatal("stats changed by completing a missing task")
	}
}

func TestGatewayCompleteExampleScenario(t *testing.T) {
	g, _ := setupGateway(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 5, 8, 45, 0, 0, time.UTC)
	task := model.Task{ID: "email", Title: "Email client", Context: model.ContextQuick, Duration: 10, CreatedAt: created}
	if err := g.AddTask(ctx, task); err != nil {
		t.Fatalf("add: %v", err)
	}

	at := time.Date(2024, 1, 5, 9, 10, 0, 0, time.UTC)
	if err := g.CompleteTask(ctx, "email", at); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got := g.GetTasks(ctx)[0]
	if !got.Completed || got.CompletedAt == nil || got.CompletedAt.Before(got.CreatedAt) {
		t.Fatalf("unexpected completed task: %#v", got)
	}

	s := g.GetStats(ctx)
	if s.Total != 1 || s.ByContext[model.ContextQuick] != 1 || s.ByContext[model.ContextFocused] != 0 || s.ByContext[model.ContextLowEnergy] != 0 {
		t.Fatalf("unexpected stats counters: %#v", s)
	}
	if len(s.ByDay) != 1 || s.ByDay["2024-01-05"] != 1 || len(s.ByHour) != 1 || s.ByHour[9] != 1 {
		t.Fatalf("unexpected stats buckets: %#v", s)
	}
}

// Completing an already-completed task counts again; the ledger is
// append-only and does not deduplicate.
func TestGatewayRecompletionDoubleCounts(t *testing.T) {
	g, _ := setupGateway(t)
	ctx := context.Background()
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	if err := g.AddTask(ctx, newTask("a", model.ContextFocused, at.Add(-time.Hour))); err != nil {
		t.Fatalf("add: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := g.CompleteTask(ctx, "a", at.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("complete %d: %v", i, err)
		}
	}
	s := g.GetStats(ctx)
	if s.Total != 2 || s.ByContext[model.ContextFocused] != 2 {
		t.Fatalf("expected double count, got %#v", s)
	}
}

func TestGatewayCompletionWithoutTimestampSkipsStats(t *testing.T) {
	g, _ := setupGateway(t)
	ctx := context.Background()
	if err := g.AddTask(ctx, newTask("a", model.ContextQuick, time.Now())); err != nil {
		t.Fatalf("add: %v", err)
	}
	done := true
	if err := g.UpdateTask(ctx, "a", model.TaskPatch{Completed: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if g.GetStats(ctx).Total != 0 {
		t.Fatal("expected aggregation skipped without completedAt")
	}
	if !g.GetTasks(ctx)[0].Completed {
		t.Fatal("expected merge applied")
	}
}

func TestGatewayEditingCompletedTaskDoesNotRecount(t *testing.T) {
	g, _ := setupGateway(t)
	ctx := context.Background()
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	_ = g.AddTask(ctx, newTask("a", model.ContextQuick, at))
	_ = g.CompleteTask(ctx, "a", at)
	title := "edited"
	if err := g.UpdateTask(ctx, "a", model.TaskPatch{Title: &title}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if g.GetStats(ctx).Total != 1 {
		t.Fatal("edit must not touch the ledger")
	}
}

func TestGatewayDeletingCompletedTaskKeepsStats(t *testing.T) {
	g, _ := setupGateway(t)
	ctx := context.Background()
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	_ = g.AddTask(ctx, newTask("a", model.ContextLowEnergy, at))
	_ = g.CompleteTask(ctx, "a", at)
	if err := g.DeleteTask(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(g.GetTasks(ctx)) != 0 {
		t.Fatal("expected task removed")
	}
	if s := g.GetStats(ctx); s.Total != 1 || s.ByContext[model.ContextLowEnergy] != 1 {
		t.Fatalf("deleting must not reverse stats: %#v", s)
	}
}

func TestGatewayClearAllRestoresDefaults(t *testing.T) {
	g, kv := setupGateway(t)
	ctx := context.Background()
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	_ = g.AddTask(ctx, newTask("a", model.ContextQuick, at))
	_ = g.CompleteTask(ctx, "a", at)
	_ = g.SaveReminderSettings(ctx, model.ReminderSettings{Enabled: false, Window: model.WindowEvening})

	if err := g.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	for _, name := range []string{TasksRecord, ReminderRecord, StatsRecord} {
		if _, err := kv.Get(ctx, name); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected %s removed, got %v", name, err)
		}
	}
	if len(g.GetTasks(ctx)) != 0 {
		t.Fatal("expected no tasks")
	}
	if s := g.GetReminderSettings(ctx); s != model.DefaultReminderSettings() {
		t.Fatalf("expected default settings, got %+v", s)
	}
	if s := g.GetStats(ctx); s.Total != 0 || len(s.ByDay) != 0 {
		t.Fatalf("expected default stats, got %#v", s)
	}
}

func TestGatewayCorruptRecordsResolveToDefaults(t *testing.T) {
	kv := NewMemoryKV()
	var logs bytes.Buffer
	g := NewGateway(kv, WithLogger(log.New(&logs, "", 0)))
	ctx := context.Background()

	_ = kv.Set(ctx, TasksRecord, "{not json")
	_ = kv.Set(ctx, ReminderRecord, `{"enabled":false,"window":"midnight"}`)
	_ = kv.Set(ctx, StatsRecord, `[1,2,3]`)

	if tasks := g.GetTasks(ctx); len(tasks) != 0 {
		t.Fatalf("expected empty tasks, got %#v", tasks)
	}
	if s := g.GetReminderSettings(ctx); s != model.DefaultReminderSettings() {
		t.Fatalf("expected default settings, got %+v", s)
	}
	if s := g.GetStats(ctx); s.Total != 0 {
		t.Fatalf("expected default stats, got %#v", s)
	}
	if strings.Count(logs.String(), "discarding") != 3 {
		t.Fatalf("expected three discard log lines, got:\n%s", logs.String())
	}

	// The next write replaces the corrupt record.
	if err := g.AddTask(ctx, newTask("a", model.ContextQuick, time.Now())); err != nil {
		t.Fatalf("add after corruption: %v", err)
	}
	if got := ids(g.GetTasks(ctx)); got != "a" {
		t.Fatalf("unexpected tasks after overwrite: %s", got)
	}
}

func TestGatewaySaveReminderSettingsValidates(t *testing.T) {
	g, _ := setupGateway(t)
	err := g.SaveReminderSettings(context.Background(), model.ReminderSettings{Enabled: true, Window: "never"})
	if !errors.Is(err, model.ErrInvalidReminderWindow) {
		t.Fatalf("expected ErrInvalidReminderWindow, got %v", err)
	}
}

type failingKV struct {
	*MemoryKV
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestGatewayReportsWriteFailures(t *testing.T) {
	g := NewGateway(failingKV{NewMemoryKV()})
	err := g.AddTask(context.Background(), newTask("a", model.ContextQuick, time.Now()))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected write failure surfaced, got %v", err)
	}
}

// tasksWriteFailKV rejects writes to the task record only.
type tasksWriteFailKV struct {
	*MemoryKV
}

func (k tasksWriteFailKV) Set(ctx context.Context, name, value string) error {
	if name == TasksRecord {
		return errors.New("disk full")
	}
	return k.MemoryKV.Set(ctx, name, value)
}

func TestGatewayFailedTaskWriteLeavesStatsUntouched(t *testing.T) {
	kv := NewMemoryKV()
	g := NewGateway(kv, WithLocation(time.UTC))
	ctx := context.Background()
	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	if err := g.AddTask(ctx, newTask("a", model.ContextQuick, at)); err != nil {
		t.Fatalf("add: %v", err)
	}

	broken := NewGateway(tasksWriteFailKV{kv}, WithLocation(time.UTC))
	if err := broken.CompleteTask(ctx, "a", at); err == nil {
		t.Fatal("expected task write failure")
	}
	if tasks := g.GetTasks(ctx); tasks[0].Completed {
		t.Fatalf("task must stay open after failed write: %+v", tasks[0])
	}
	if s := g.GetStats(ctx); s.Total != 0 {
		t.Fatalf("stats must not count a completion that was not saved: %+v", s)
	}

	if err := g.CompleteTask(ctx, "a", at); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s := g.GetStats(ctx); s.Total != 1 || s.ByContext[model.ContextQuick] != 1 {
		t.Fatalf("expected exactly one recorded completion after retry, got %+v", s)
	}
}

func TestGatewayOverSQLite(t *testing.T) {
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "contexttasks.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	g := NewGateway(kv, WithLocation(time.UTC))
	ctx := context.Background()

	at := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	task := newTask("a", model.ContextFocused, at.Add(-time.Hour))
	task.Tags = []string{"deep", "deep", "writing"}
	task.Note = "outline first"
	if err := g.AddTask(ctx, task); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := g.CompleteTask(ctx, "a", at); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got := g.GetTasks(ctx)
	if len(got) != 1 || strings.Join(got[0].Tags, ",") != "deep,writing" || got[0].Note != "outline first" {
		t.Fatalf("unexpected persisted task: %#v", got)
	}
	if got[0].CompletedAt == nil || !got[0].CompletedAt.Equal(at) {
		t.Fatalf("unexpected completed_at: %v", got[0].CompletedAt)
	}
	if s := g.GetStats(ctx); s.ByHour[9] != 1 || s.ByContext[model.ContextFocused] != 1 {
		t.Fatalf("unexpected stats: %#v", s)
	}

	if err := g.ClearAll(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(g.GetTasks(ctx)) != 0 || g.GetStats(ctx).Total != 0 {
		t.Fatal("expected defaults after clear")
	}
}
