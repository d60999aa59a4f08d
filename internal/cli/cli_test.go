package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandeepkv93/contexttasks/internal/model"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CONTEXTTASKS_TIMEZONE", "UTC")
	return filepath.Join(t.TempDir(), "state", "tasks.db")
}

func TestCLITaskLifecycle(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, "--db", db, "add", "--context", "focused", "--minutes", "23", "-t", "work", "write", "report")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	fields := strings.Fields(out)
	if len(fields) < 2 || fields[0] != "added" {
		t.Fatalf("unexpected add output: %q", out)
	}
	id := fields[1]
	if !strings.Contains(out, `"write report" to Focused (25m)`) {
		t.Fatalf("expected snapped duration in output: %q", out)
	}

	out, err = runCLI(t, "--db", db, "list", "--context", "focused")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "write report") || !strings.Contains(out, "#work") {
		t.Fatalf("unexpected list output: %q", out)
	}

	out, _ = runCLI(t, "--db", db, "list", "--tag", "home")
	if strings.TrimSpace(out) != "no tasks" {
		t.Fatalf("expected tag filter to hide task: %q", out)
	}

	out, err = runCLI(t, "--db", db, "remind")
	if err != nil {
		t.Fatalf("remind: %v", err)
	}
	if !strings.HasPrefix(out, "yes: 1 open tasks") {
		t.Fatalf("expected reminder with default settings: %q", out)
	}

	if out, err = runCLI(t, "--db", db, "done", id[:4]); err != nil {
		t.Fatalf("done: %v (%s)", err, out)
	}
	out, err = runCLI(t, "--db", db, "done", id)
	if err != nil || !strings.Contains(out, "already done") {
		t.Fatalf("expected second done to be skipped, got %q %v", out, err)
	}

	out, err = runCLI(t, "--db", db, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "completed: 1") || !strings.Contains(out, string(model.ContextFocused)) {
		t.Fatalf("unexpected stats output: %q", out)
	}

	out, err = runCLI(t, "--db", db, "list")
	if err != nil || strings.TrimSpace(out) != "no tasks" {
		t.Fatalf("expected completed task hidden from list, got %q %v", out, err)
	}
	out, _ = runCLI(t, "--db", db, "list", "--all")
	if !strings.Contains(out, "[x]") {
		t.Fatalf("expected completed task with --all: %q", out)
	}

	if _, err := runCLI(t, "--db", db, "rm", id); err != nil {
		t.Fatalf("rm: %v", err)
	}
	out, _ = runCLI(t, "--db", db, "stats")
	if !strings.Contains(out, "completed: 1") {
		t.Fatalf("deleting must keep stats: %q", out)
	}
}

func TestCLISettingsAndClear(t *testing.T) {
	db := setupCLI(t)

	out, err := runCLI(t, "--db", db, "settings", "--enabled=false", "--window", "evening")
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if !strings.Contains(out, "enabled: false") || !strings.Contains(out, "window: evening") {
		t.Fatalf("unexpected settings output: %q", out)
	}

	if _, err := runCLI(t, "--db", db, "settings", "--window", "midnight"); err == nil {
		t.Fatal("expected invalid window to fail")
	}

	if _, err := runCLI(t, "--db", db, "clear"); err == nil {
		t.Fatal("expected clear without --yes to fail")
	}
	if _, err := runCLI(t, "--db", db, "clear", "--yes"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	out, _ = runCLI(t, "--db", db, "settings")
	if !strings.Contains(out, "enabled: true") || !strings.Contains(out, "window: anytime") {
		t.Fatalf("expected defaults after clear: %q", out)
	}
}

func TestCLIMemoryAndVersion(t *testing.T) {
	setupCLI(t)
	out, err := runCLI(t, "--memory", "add", "stretch")
	if err != nil || !strings.Contains(out, "to Quick (15m)") {
		t.Fatalf("unexpected memory add: %q %v", out, err)
	}
	out, _ = runCLI(t, "--memory", "list")
	if strings.TrimSpace(out) != "no tasks" {
		t.Fatalf("memory store must not persist across runs: %q", out)
	}

	out, err = runCLI(t, "version")
	if err != nil || strings.TrimSpace(out) != "contexttasks test" {
		t.Fatalf("unexpected version output: %q %v", out, err)
	}
}

func TestCLIAddRejectsBlankTitle(t *testing.T) {
	db := setupCLI(t)
	if _, err := runCLI(t, "--db", db, "add", "   "); err == nil || !strings.Contains(err.Error(), "title is required") {
		t.Fatalf("expected blank title rejected, got %v", err)
	}
	out, _ := runCLI(t, "--db", db, "list", "--all")
	if strings.TrimSpace(out) != "no tasks" {
		t.Fatalf("blank title must not be stored: %q", out)
	}
}

func TestResolveTask(t *testing.T) {
	tasks := []model.Task{{ID: "abc123"}, {ID: "abd456"}}
	if _, err := resolveTask(tasks, "ab"); err == nil {
		t.Fatal("expected ambiguous prefix error")
	}
	if got, err := resolveTask(tasks, "ABD"); err != nil || got.ID != "abd456" {
		t.Fatalf("unexpected resolve: %+v %v", got, err)
	}
	if _, err := resolveTask(tasks, "zz"); err == nil {
		t.Fatal("expected not found error")
	}
}
