package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/adcflow/adcflow/pkg/conftree"
	"github.com/adcflow/adcflow/pkg/telemetry"
)

// DefaultRootPath is where virtual services live in the device
// configuration tree.
const DefaultRootPath conftree.Path = "config/slb/virtualServers"

// Orchestrator implements the create/delete workflows on top of the
// scheduler: existence precondition, one apply run, one confirmation.
type Orchestrator struct {
	transport Transport
	scheduler *Scheduler
	recorder  RunRecorder
	tel       *telemetry.Telemetry
	root      conftree.Path
}

// NewOrchestrator creates a new workflow orchestrator. An empty root path
// selects DefaultRootPath; nil recorder and telemetry are tolerated.
func NewOrchestrator(transport Transport, scheduler *Scheduler, recorder RunRecorder, tel *telemetry.Telemetry, root conftree.Path) *Orchestrator {
	if root == "" {
		root = DefaultRootPath
	}
	if tel == nil {
		tel = telemetry.Nop()
	}
	return &Orchestrator{
		transport: transport,
		scheduler: scheduler,
		recorder:  recorder,
		tel:       tel,
		root:      root,
	}
}

// CreateIfAbsent applies the desired object beneath the configuration root,
// but only when the target does not already exist. The desired object must
// carry a non-empty "name" field. On a precondition failure no write is
// issued. Application is non-transactional: on a later phase failure,
// earlier fully-completed phases remain applied.
func (o *Orchestrator) CreateIfAbsent(ctx context.Context, desired conftree.Object) (*Confirmation, error) {
	if len(desired) == 0 {
		return nil, NewValidationError("desired configuration is empty")
	}
	nameVal, ok := desired[fieldName]
	if !ok {
		return nil, NewValidationError("desired configuration is missing required field").
			WithField(fieldName)
	}
	name := nameVal.Scalar()
	if nameVal.IsObject() || name == "" {
		return nil, NewValidationError("name field requires a non-empty scalar value").
			WithField(fieldName)
	}

	identity := o.root.Child(name)

	ctx, span := o.tel.Tracer.Start(ctx, "engine.create_if_absent",
		attribute.String("config.name", name),
		attribute.String("config.path", identity.String()),
	)
	defer span.End()

	snap, err := o.transport.Read(ctx, identity)
	if err != nil {
		err = NewTransportError("existence check failed", err).WithPath(identity)
		o.tel.Tracer.RecordError(span, err)
		return nil, err
	}
	if snap.Exists {
		err = NewAlreadyExistsError(fmt.Sprintf("virtual service %q already exists", name), identity)
		o.tel.Tracer.RecordError(span, err)
		return nil, err
	}

	runID := uuid.New().String()
	ctx = telemetry.ContextWithRunID(ctx, runID)
	logger := o.tel.Logger.WithRunID(runID).WithField("name", name)
	startedAt := time.Now()

	if o.recorder != nil {
		run := &RunRecord{ID: runID, Target: name, Path: identity, StartedAt: startedAt}
		if recErr := o.recorder.RunStarted(ctx, run); recErr != nil {
			logger.WithError(recErr).Warn("failed to record run start")
		}
	}
	o.tel.Metrics.RecordApplyStarted()
	logger.Info("applying virtual service configuration")

	applyErr := o.scheduler.Apply(ctx, o.root, desired)
	duration := time.Since(startedAt)

	status := RunStatusSucceeded
	errMsg := ""
	if applyErr != nil {
		status = RunStatusFailed
		errMsg = applyErr.Error()
	}
	o.tel.Metrics.RecordApplyCompleted(string(status), duration)
	if o.recorder != nil {
		if recErr := o.recorder.RunCompleted(ctx, runID, status, errMsg); recErr != nil {
			logger.WithError(recErr).Warn("failed to record run completion")
		}
	}

	if applyErr != nil {
		o.tel.Tracer.RecordError(span, applyErr)
		logger.WithError(applyErr).Error("apply failed")
		return nil, applyErr
	}

	logger.Infof("virtual service configured in %s", duration)
	return &Confirmation{
		RunID:     runID,
		Name:      name,
		Path:      identity,
		StartedAt: startedAt,
		Duration:  duration,
	}, nil
}

// Exists reports whether a virtual service with the given name is present.
func (o *Orchestrator) Exists(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, NewValidationError("name must not be empty").WithField(fieldName)
	}
	snap, err := o.transport.Read(ctx, o.root.Child(name))
	if err != nil {
		return false, NewTransportError("existence check failed", err).WithPath(o.root.Child(name))
	}
	return snap.Exists, nil
}

// DeleteIfPresent removes the named virtual service and reports whether a
// delete was issued. Deleting an absent service is a no-op, not an error.
func (o *Orchestrator) DeleteIfPresent(ctx context.Context, name string) (bool, error) {
	exists, err := o.Exists(ctx, name)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	identity := o.root.Child(name)
	if err := o.transport.Delete(ctx, identity); err != nil {
		return false, NewTransportError("delete failed", err).WithPath(identity)
	}
	o.tel.Logger.WithField("name", name).Info("virtual service deleted")
	return true, nil
}
