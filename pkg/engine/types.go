package engine

import (
	"time"

	"github.com/adcflow/adcflow/pkg/conftree"
)

// RunStatus represents the terminal status of an apply run.
type RunStatus string

const (
	// RunStatusRunning indicates the run is currently executing.
	RunStatusRunning RunStatus = "running"

	// RunStatusSucceeded indicates every phase completed.
	RunStatusSucceeded RunStatus = "succeeded"

	// RunStatusFailed indicates a phase failed and later phases were not
	// started. Earlier, fully completed phases remain applied.
	RunStatusFailed RunStatus = "failed"
)

// RunRecord describes one apply invocation for the audit trail.
type RunRecord struct {
	// ID is the unique run identifier.
	ID string `json:"id"`

	// Target is the name of the configuration node being applied.
	Target string `json:"target"`

	// Path is the node's identity path.
	Path conftree.Path `json:"path"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
}

// WriteRecord describes one resolved write task for the audit trail.
type WriteRecord struct {
	// RunID identifies the apply run this write belongs to.
	RunID string `json:"run_id"`

	// Phase is the scheduling phase the write ran in.
	Phase string `json:"phase"`

	// Field is the configuration field that was written.
	Field string `json:"field"`

	// Path is the full path the write targeted.
	Path conftree.Path `json:"path"`

	// Type is the wire type the value was encoded with.
	Type conftree.WireType `json:"type"`

	// Status is "succeeded" or "failed".
	Status string `json:"status"`

	// Error is the failure message, if any.
	Error string `json:"error,omitempty"`

	// Duration is how long the write took.
	Duration time.Duration `json:"duration"`
}

// Confirmation is the successful result of a workflow operation.
type Confirmation struct {
	// RunID identifies the apply run that produced this confirmation.
	RunID string `json:"run_id"`

	// Name is the configured node's name.
	Name string `json:"name"`

	// Path is the node's identity path.
	Path conftree.Path `json:"path"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total apply time.
	Duration time.Duration `json:"duration"`
}
