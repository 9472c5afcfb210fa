// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-signals.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrPollerClosed      = fmt.Errorf("poller is closed")
	ErrSourceClosed      = fmt.Errorf("event source is closed")
	ErrAlreadyRegistered = fmt.Errorf("descriptor already registered")
	ErrNotRegistered     = fmt.Errorf("descriptor not registered")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrNotSupported      = fmt.Errorf("operation not supported")
)

// OSError wraps a failed kernel operation with the operation context.
// Mask mutation, notification-object and poll failures are all reported
// through this one kind; callers distinguish them by Op and by the wrapped
// errno, not by a richer hierarchy.
type OSError struct {
	Op  string // operation that failed, e.g. "sigprocmask block"
	Err error  // underlying OS error
}

// Error implements the error interface.
func (e *OSError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying OS error for errors.Is/As matching.
func (e *OSError) Unwrap() error {
	return e.Err
}

// NewOSError creates an OSError for the given operation.
func NewOSError(op string, err error) *OSError {
	return &OSError{Op: op, Err: err}
}
