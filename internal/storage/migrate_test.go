package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if v, err := schemaVersion(db); err != nil || v != 0 {
		t.Fatalf("expected schema version 0 after down, got %d (%v)", v, err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	kv, err := NewSQLiteKV(db)
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}
	if err := kv.Set(context.Background(), "roundtrip", `{"ok":true}`); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}
	got, err := kv.Get(context.Background(), "roundtrip")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got != `{"ok":true}` {
		t.Fatalf("unexpected value after roundtrip: %q", got)
	}
}

func TestSQLiteKVSetGetDelete(t *testing.T) {
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "kv.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	ctx := context.Background()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := kv.Set(ctx, "a", "1"); err != nil {
		t.Fatalf("set a: %v", err)
	}
	if err := kv.Set(ctx, "a", "2"); err != nil {
		t.Fatalf("overwrite a: %v", err)
	}
	if err := kv.Set(ctx, "b", "3"); err != nil {
		t.Fatalf("set b: %v", err)
	}
	if got, _ := kv.Get(ctx, "a"); got != "2" {
		t.Fatalf("expected upsert to overwrite, got %q", got)
	}
	if err := kv.Delete(ctx, "a", "b", "never-written"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected b deleted, got %v", err)
	}
}
