package engine

import (
	"context"
	"encoding/json"

	"github.com/adcflow/adcflow/pkg/conftree"
)

// Transport is the narrow device capability the engine drives. It owns the
// session lifecycle, payload encoding, and status-code handling; the engine
// treats any returned error uniformly as "this operation did not succeed".
type Transport interface {
	// Write sets the configuration value at path. The operation is
	// idempotent on the device side and is attempted exactly once.
	Write(ctx context.Context, path conftree.Path, value conftree.TypedValue) error

	// Read fetches the current value or existence status at path. A missing
	// node is not an error: it is reported as a snapshot with Exists false.
	Read(ctx context.Context, path conftree.Path) (*Snapshot, error)

	// Delete removes the configuration node at path and its children.
	Delete(ctx context.Context, path conftree.Path) error
}

// Snapshot is the result of reading a configuration node.
type Snapshot struct {
	// Path is the node that was read.
	Path conftree.Path `json:"path"`

	// Exists reports whether the node is present on the device.
	Exists bool `json:"exists"`

	// Value is the raw value returned by the device, if any.
	Value json.RawMessage `json:"value,omitempty"`
}

// RunRecorder persists apply-run history for audit purposes. Recording is
// observational: a recorder failure never fails the apply, and the device
// remains the sole source of configuration truth.
type RunRecorder interface {
	// RunStarted records the beginning of an apply run.
	RunStarted(ctx context.Context, run *RunRecord) error

	// WriteApplied records one resolved write task.
	WriteApplied(ctx context.Context, rec *WriteRecord) error

	// RunCompleted records the terminal status of an apply run.
	RunCompleted(ctx context.Context, runID string, status RunStatus, errMsg string) error
}
