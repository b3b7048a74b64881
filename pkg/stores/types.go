package stores

import (
	"context"
	"time"
)

// RunStatus represents the status of a recorded apply run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// Run represents one apply invocation.
type Run struct {
	ID          string     `json:"id"`
	Target      string     `json:"target"`
	Path        string     `json:"path"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// WriteEvent represents one resolved write within a run, append-only.
type WriteEvent struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	Phase      string    `json:"phase"`
	Field      string    `json:"field"`
	Path       string    `json:"path"`
	WireType   string    `json:"wire_type"`
	Status     string    `json:"status"`
	Error      *string   `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Store defines the interface for the persistence layer.
type Store interface {
	// Lifecycle
	Init(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error

	// Run operations
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	CompleteRun(ctx context.Context, id string, status RunStatus, errMsg *string) error
	ListRuns(ctx context.Context, limit, offset int) ([]*Run, error)

	// Write event operations
	AppendWrite(ctx context.Context, event *WriteEvent) error
	ListWritesByRun(ctx context.Context, runID string) ([]*WriteEvent, error)

	// Utility
	HealthCheck(ctx context.Context) error
}
