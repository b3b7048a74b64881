package engine

import (
	"errors"
	"fmt"

	"github.com/adcflow/adcflow/pkg/conftree"
)

// ErrorClass represents the classification of an engine error.
type ErrorClass string

const (
	// ErrorClassValidation indicates malformed caller input, detected
	// before any I/O. Never retried.
	ErrorClassValidation ErrorClass = "validation"

	// ErrorClassAlreadyExists indicates a workflow precondition failure:
	// the target node is already present on the device.
	ErrorClassAlreadyExists ErrorClass = "already_exists"

	// ErrorClassTransport indicates a failed device read or write. The
	// engine does not interpret the underlying cause.
	ErrorClassTransport ErrorClass = "transport"

	// ErrorClassPartial indicates a phase-level aggregate failure: at least
	// one task in a phase failed. The error wraps the first failing task's
	// error and identifies the field and phase.
	ErrorClassPartial ErrorClass = "partial"
)

// EngineError is a classified error with scheduling context.
// nolint:revive // EngineError is intentionally named to distinguish from standard errors
type EngineError struct {
	// Class is the error classification.
	Class ErrorClass `json:"class"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Field is the configuration field that caused the error, if known.
	Field string `json:"field,omitempty"`

	// Phase is the phase in which the error occurred, if applicable.
	Phase string `json:"phase,omitempty"`

	// Path is the configuration path involved, if known.
	Path conftree.Path `json:"path,omitempty"`

	// Err is the underlying error.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Class, e.Message)
	if e.Phase != "" {
		msg += fmt.Sprintf(" (phase=%s", e.Phase)
		if e.Field != "" {
			msg += fmt.Sprintf(", field=%s", e.Field)
		}
		msg += ")"
	} else if e.Field != "" {
		msg += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is implements error equality checking for errors.Is.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// WithField adds field context to an error.
func (e *EngineError) WithField(field string) *EngineError {
	e.Field = field
	return e
}

// WithPhase adds phase context to an error.
func (e *EngineError) WithPhase(phase Phase) *EngineError {
	e.Phase = phase.String()
	return e
}

// WithPath adds path context to an error.
func (e *EngineError) WithPath(path conftree.Path) *EngineError {
	e.Path = path
	return e
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) *EngineError {
	return &EngineError{Class: ErrorClassValidation, Message: message}
}

// NewAlreadyExistsError creates a new already-exists error.
func NewAlreadyExistsError(message string, path conftree.Path) *EngineError {
	return &EngineError{Class: ErrorClassAlreadyExists, Message: message, Path: path}
}

// NewTransportError creates a new transport error wrapping the failed
// operation's error.
func NewTransportError(message string, err error) *EngineError {
	return &EngineError{Class: ErrorClassTransport, Message: message, Err: err}
}

// NewPartialError creates a new partial-application error wrapping the
// first failing task's error.
func NewPartialError(message string, err error) *EngineError {
	return &EngineError{Class: ErrorClassPartial, Message: message, Err: err}
}

// IsValidation returns true if the error is classified as validation.
func IsValidation(err error) bool {
	return classOf(err) == ErrorClassValidation
}

// IsAlreadyExists returns true if the error is classified as already-exists.
func IsAlreadyExists(err error) bool {
	return classOf(err) == ErrorClassAlreadyExists
}

// IsTransport returns true if the error is classified as transport.
func IsTransport(err error) bool {
	return classOf(err) == ErrorClassTransport
}

// IsPartial returns true if the error is classified as partial application.
func IsPartial(err error) bool {
	return classOf(err) == ErrorClassPartial
}

func classOf(err error) ErrorClass {
	var e *EngineError
	if errors.As(err, &e) {
		return e.Class
	}
	return ""
}
