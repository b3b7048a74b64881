package rest

import (
	"errors"
	"fmt"

	"github.com/adcflow/adcflow/pkg/conftree"
)

// TransportError represents a failed device API operation. Non-2xx
// responses carry the status code and response body; network-level
// failures carry the underlying error.
type TransportError struct {
	// Op is the operation that failed ("login", "write", "read", "delete").
	Op string

	// Path is the configuration path involved, if any.
	Path conftree.Path

	// StatusCode is the HTTP status code, or 0 for network-level failures.
	StatusCode int

	// Body is the response body returned with a non-success status.
	Body string

	// Err is the underlying error for network-level failures.
	Err error
}

func (e *TransportError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += fmt.Sprintf(" %s", e.Path)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
		if e.Body != "" {
			msg += fmt.Sprintf(" (%s)", e.Body)
		}
		return msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg + ": failed"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether the failure was an authentication rejection.
func IsAuthError(err error) bool {
	var e *TransportError
	if errors.As(err, &e) {
		return e.StatusCode == 401 || e.StatusCode == 403
	}
	return false
}
