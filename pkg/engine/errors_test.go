package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestEngineError_Error(t *testing.T) {
	err := NewPartialError("phase general failed at field \"backlog\"", errors.New("rejected")).
		WithPhase(PhaseGeneral).
		WithField("backlog")

	msg := err.Error()
	if !strings.Contains(msg, "partial") {
		t.Errorf("Expected class in message, got %q", msg)
	}
	if !strings.Contains(msg, "phase=general") {
		t.Errorf("Expected phase context in message, got %q", msg)
	}
	if !strings.Contains(msg, "field=backlog") {
		t.Errorf("Expected field context in message, got %q", msg)
	}
	if !strings.Contains(msg, "rejected") {
		t.Errorf("Expected wrapped cause in message, got %q", msg)
	}
}

func TestEngineError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransportError("write failed", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the wrapped cause")
	}
}

func TestEngineError_WrappedClassifiers(t *testing.T) {
	// Classification survives further wrapping with %w.
	inner := NewValidationError("bad input").WithField("name")
	wrapped := fmt.Errorf("loading definition: %w", inner)

	if !IsValidation(wrapped) {
		t.Error("Expected IsValidation through a %w wrapper")
	}
	if IsTransport(wrapped) {
		t.Error("Expected IsTransport false for a validation error")
	}
}

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", NewValidationError("bad"), IsValidation},
		{"already exists", NewAlreadyExistsError("dup", "a/b"), IsAlreadyExists},
		{"transport", NewTransportError("down", errors.New("x")), IsTransport},
		{"partial", NewPartialError("phase failed", errors.New("x")), IsPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("Expected %s classifier to match", tt.name)
			}
		})
	}

	if IsValidation(errors.New("plain")) {
		t.Error("Expected plain errors to match no classifier")
	}
	if IsPartial(nil) {
		t.Error("Expected nil to match no classifier")
	}
}

func TestEngineError_Is(t *testing.T) {
	a := NewTransportError("write failed", errors.New("x"))
	b := NewTransportError("read failed", errors.New("y"))

	if !errors.Is(a, b) {
		t.Error("Expected errors of the same class to match with errors.Is")
	}
	if errors.Is(a, NewValidationError("z")) {
		t.Error("Expected errors of different classes not to match")
	}
}
