package stores

import (
	"context"

	"github.com/adcflow/adcflow/pkg/engine"
)

// Recorder adapts a Store to the engine's RunRecorder interface.
type Recorder struct {
	store Store
}

var _ engine.RunRecorder = (*Recorder)(nil)

// NewRecorder creates a recorder backed by the given store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// RunStarted records the beginning of an apply run.
func (r *Recorder) RunStarted(ctx context.Context, run *engine.RunRecord) error {
	return r.store.CreateRun(ctx, &Run{
		ID:        run.ID,
		Target:    run.Target,
		Path:      run.Path.String(),
		Status:    RunStatusRunning,
		StartedAt: run.StartedAt,
	})
}

// WriteApplied appends one resolved write to the audit log.
func (r *Recorder) WriteApplied(ctx context.Context, rec *engine.WriteRecord) error {
	event := &WriteEvent{
		RunID:      rec.RunID,
		Phase:      rec.Phase,
		Field:      rec.Field,
		Path:       rec.Path.String(),
		WireType:   string(rec.Type),
		Status:     rec.Status,
		DurationMS: rec.Duration.Milliseconds(),
	}
	if rec.Error != "" {
		msg := rec.Error
		event.Error = &msg
	}
	return r.store.AppendWrite(ctx, event)
}

// RunCompleted records the terminal status of an apply run.
func (r *Recorder) RunCompleted(ctx context.Context, runID string, status engine.RunStatus, errMsg string) error {
	var msg *string
	if errMsg != "" {
		msg = &errMsg
	}
	return r.store.CompleteRun(ctx, runID, RunStatus(status), msg)
}
