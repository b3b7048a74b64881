package stores

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate store: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRun(id string) *Run {
	return &Run{
		ID:        id,
		Target:    "svc1",
		Path:      "config/slb/virtualServers/svc1",
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}
}

func TestNewSQLiteStore_RequiresPath(t *testing.T) {
	_, err := NewSQLiteStore(Config{})
	if err == nil {
		t.Fatal("Expected error for empty path, got nil")
	}
}

func TestSQLiteStore_Migrate_Idempotent(t *testing.T) {
	store := newTestStore(t)

	// A second migration run is a no-op, not an error.
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Expected no error on repeat migration, got: %v", err)
	}
}

func TestSQLiteStore_CreateAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := testRun("run-1")
	if err := store.CreateRun(ctx, run); err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	got, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("Failed to get run: %v", err)
	}

	if got.ID != "run-1" {
		t.Errorf("Expected ID run-1, got %s", got.ID)
	}
	if got.Target != "svc1" {
		t.Errorf("Expected target svc1, got %s", got.Target)
	}
	if got.Status != RunStatusRunning {
		t.Errorf("Expected status running, got %s", got.Status)
	}
	if got.CompletedAt != nil {
		t.Error("Expected nil CompletedAt for a running run")
	}
}

func TestSQLiteStore_GetRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "nonexistent")
	if err == nil {
		t.Fatal("Expected error for non-existent run, got nil")
	}
}

func TestSQLiteStore_CompleteRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateRun(ctx, testRun("run-1")); err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	errMsg := "phase general failed"
	if err := store.CompleteRun(ctx, "run-1", RunStatusFailed, &errMsg); err != nil {
		t.Fatalf("Failed to complete run: %v", err)
	}

	got, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("Failed to get run: %v", err)
	}
	if got.Status != RunStatusFailed {
		t.Errorf("Expected status failed, got %s", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("Expected CompletedAt to be set")
	}
	if got.Error == nil || *got.Error != errMsg {
		t.Errorf("Expected error %q, got %v", errMsg, got.Error)
	}
}

func TestSQLiteStore_CompleteRun_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.CompleteRun(context.Background(), "nonexistent", RunStatusSucceeded, nil)
	if err == nil {
		t.Fatal("Expected error for non-existent run, got nil")
	}
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		run := testRun(id)
		run.StartedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.CreateRun(ctx, run); err != nil {
			t.Fatalf("Failed to create run %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2, 0)
	if err != nil {
		t.Fatalf("Failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}

	// Most recent first.
	if runs[0].ID != "run-3" {
		t.Errorf("Expected run-3 first, got %s", runs[0].ID)
	}
	if runs[1].ID != "run-2" {
		t.Errorf("Expected run-2 second, got %s", runs[1].ID)
	}

	rest, err := store.ListRuns(ctx, 2, 2)
	if err != nil {
		t.Fatalf("Failed to list runs with offset: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != "run-1" {
		t.Errorf("Expected [run-1], got %v", rest)
	}
}

func TestSQLiteStore_AppendAndListWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateRun(ctx, testRun("run-1")); err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	events := []*WriteEvent{
		{RunID: "run-1", Phase: "naming", Field: "name", Path: "config/slb/virtualServers/svc1", WireType: "string", Status: "succeeded", DurationMS: 12},
		{RunID: "run-1", Phase: "general", Field: "port", Path: "config/slb/virtualServers/svc1/port", WireType: "uint32", Status: "succeeded", DurationMS: 8},
	}
	for _, e := range events {
		if err := store.AppendWrite(ctx, e); err != nil {
			t.Fatalf("Failed to append write: %v", err)
		}
		if e.ID == 0 {
			t.Error("Expected assigned event ID")
		}
	}

	got, err := store.ListWritesByRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("Failed to list writes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 writes, got %d", len(got))
	}

	// Insertion order.
	if got[0].Field != "name" || got[1].Field != "port" {
		t.Errorf("Expected [name port], got [%s %s]", got[0].Field, got[1].Field)
	}
	if got[1].WireType != "uint32" {
		t.Errorf("Expected wire type uint32, got %s", got[1].WireType)
	}
}

func TestSQLiteStore_ListWritesByRun_Empty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.ListWritesByRun(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected 0 writes, got %d", len(got))
	}
}

func TestSQLiteStore_HealthCheck(t *testing.T) {
	store := newTestStore(t)

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Errorf("Expected healthy store, got: %v", err)
	}

	uninit := &SQLiteStore{path: "x.db"}
	if err := uninit.HealthCheck(context.Background()); err == nil {
		t.Error("Expected error for uninitialized store")
	}
}
