package engine

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/adcflow/adcflow/pkg/conftree"
	"github.com/adcflow/adcflow/pkg/telemetry"
)

// Scheduler drives phase-ordered, partially-parallel application of a
// desired configuration object against the device transport.
type Scheduler struct {
	// transport performs the individual writes.
	transport Transport

	// recorder receives per-write audit records. May be nil.
	recorder RunRecorder

	// tel provides logging, metrics, and tracing.
	tel *telemetry.Telemetry

	// maxParallel bounds concurrent writes within a single phase.
	maxParallel int
}

// NewScheduler creates a new scheduler. A nil telemetry bundle disables
// instrumentation; a nil recorder disables the audit trail.
func NewScheduler(transport Transport, recorder RunRecorder, tel *telemetry.Telemetry, maxParallel int) *Scheduler {
	if maxParallel <= 0 {
		maxParallel = 10
	}
	if tel == nil {
		tel = telemetry.Nop()
	}
	return &Scheduler{
		transport:   transport,
		recorder:    recorder,
		tel:         tel,
		maxParallel: maxParallel,
	}
}

// writeTask is one pending operation within a phase. Exactly one of value
// or sub is meaningful: a subtree task recurses instead of writing.
type writeTask struct {
	field string
	path  conftree.Path
	value conftree.TypedValue
	sub   conftree.Object
}

// Apply partitions the desired object's fields into the five phases and
// executes them strictly in order against basePath. If a "name" field is
// present it is written first and every later task addresses the derived
// child path. An empty desired object succeeds trivially.
//
// Cancellation is observed only between phases: in-flight writes of the
// active phase always finish naturally.
func (s *Scheduler) Apply(ctx context.Context, basePath conftree.Path, desired conftree.Object) error {
	if len(desired) == 0 {
		return nil
	}

	buckets, err := partition(desired)
	if err != nil {
		return err
	}

	// The working path for every phase after Naming. Computed once and
	// immutable for the rest of this invocation.
	childPath := basePath
	if len(buckets[PhaseNaming]) > 0 {
		name := desired[fieldName].Scalar()
		if name == "" {
			return NewValidationError("name field requires a non-empty scalar value").
				WithField(fieldName).WithPath(basePath)
		}
		childPath = basePath.Child(name)
	}

	ctx, span := s.tel.Tracer.Start(ctx, "engine.apply",
		attribute.String("config.path", childPath.String()),
		attribute.Int("config.fields", len(desired)),
	)
	defer span.End()

	for phase := PhaseNaming; phase < numPhases; phase++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		tasks := buildTasks(phase, buckets[phase], childPath, desired)
		if len(tasks) == 0 {
			continue
		}

		if err := s.runPhase(ctx, phase, tasks); err != nil {
			s.tel.Tracer.RecordError(span, err)
			return err
		}
	}

	return nil
}

// partition assigns every field to a phase, returning the field names per
// phase in lexical order. Lexical order within a phase is the deterministic
// tie-break for reporting concurrent failures.
func partition(desired conftree.Object) ([numPhases][]string, error) {
	var buckets [numPhases][]string
	for _, field := range desired.Fields() {
		phase, err := classify(field, desired[field])
		if err != nil {
			return buckets, err
		}
		buckets[phase] = append(buckets[phase], field)
	}
	return buckets, nil
}

// buildTasks materializes the write tasks for one phase. The naming task
// targets the derived child path itself; all other tasks target a field
// segment beneath it.
func buildTasks(phase Phase, fields []string, childPath conftree.Path, desired conftree.Object) []writeTask {
	tasks := make([]writeTask, 0, len(fields))
	for _, field := range fields {
		v := desired[field]
		switch phase {
		case PhaseNaming:
			tasks = append(tasks, writeTask{
				field: field,
				path:  childPath,
				value: conftree.Typed(field, v),
			})
		case PhaseSubtree:
			tasks = append(tasks, writeTask{
				field: field,
				path:  childPath.Child(field),
				sub:   v.Object(),
			})
		default:
			tasks = append(tasks, writeTask{
				field: field,
				path:  childPath.Child(field),
				value: conftree.Typed(field, v),
			})
		}
	}
	return tasks
}

// runPhase fans the phase's tasks out across a bounded worker pool and
// waits for the full set to resolve. Sibling failures never cancel in-flight
// siblings; the first failure in lexical field order is returned once the
// phase has drained.
func (s *Scheduler) runPhase(ctx context.Context, phase Phase, tasks []writeTask) error {
	workers := s.maxParallel
	if len(tasks) < workers {
		workers = len(tasks)
	}

	queue := make(chan int, len(tasks))
	for i := range tasks {
		queue <- i
	}
	close(queue)

	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				errs[i] = s.runTask(ctx, phase, tasks[i])
			}
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return NewPartialError(
				fmt.Sprintf("phase %s failed at field %q", phase, tasks[i].field), err,
			).WithPhase(phase).WithField(tasks[i].field).WithPath(tasks[i].path)
		}
	}
	return nil
}

// runTask resolves a single task: a recursive apply for subtree tasks, a
// transport write for everything else.
func (s *Scheduler) runTask(ctx context.Context, phase Phase, t writeTask) error {
	if t.sub != nil {
		return s.Apply(ctx, t.path, t.sub)
	}

	logger := s.tel.Logger.
		WithRunID(telemetry.RunIDFromContext(ctx)).
		WithField("phase", phase.String()).
		WithField("path", t.path.String())

	timer := telemetry.NewTimer()
	err := s.transport.Write(ctx, t.path, t.value)
	duration := timer.Duration()

	status := "succeeded"
	if err != nil {
		status = "failed"
	}
	s.tel.Metrics.RecordWrite(phase.String(), status, duration)

	if s.recorder != nil {
		rec := &WriteRecord{
			RunID:    telemetry.RunIDFromContext(ctx),
			Phase:    phase.String(),
			Field:    t.field,
			Path:     t.path,
			Type:     t.value.Type,
			Status:   status,
			Duration: duration,
		}
		if err != nil {
			rec.Error = err.Error()
		}
		if recErr := s.recorder.WriteApplied(ctx, rec); recErr != nil {
			logger.WithError(recErr).Warn("failed to record write")
		}
	}

	if err != nil {
		logger.WithError(err).Error("configuration write failed")
		return NewTransportError("write failed", err).WithField(t.field).WithPath(t.path)
	}

	logger.Debugf("wrote %s value %q", t.value.Type, t.value.Value)
	return nil
}
