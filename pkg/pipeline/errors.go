package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
)

// Common sentinel errors
var (
	ErrInputNotFound   = errors.New("input table not found")
	ErrInputUnreadable = errors.New("input table unreadable")
	ErrReconcileFailed = errors.New("reconciliation failed")
	ErrWriteFailed     = errors.New("output write failed")
)

// PipelineError provides structured error information for pipeline failures.
type PipelineError struct {
	Stage   string // Pipeline stage that failed (e.g., "read", "reconcile", "write")
	Table   string // Table involved (if applicable)
	Op      string // Operation that failed
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Table != "" {
		if e.Context != "" {
			return fmt.Sprintf("%s %s table %s (%s): %v", e.Stage, e.Op, e.Table, e.Context, e.Cause)
		}
		return fmt.Sprintf("%s %s table %s: %v", e.Stage, e.Op, e.Table, e.Cause)
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Stage, e.Op, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *PipelineError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// readError creates an input stage error for the given table, tagged
// with ErrInputNotFound when the source reports a missing table and
// ErrInputUnreadable otherwise.
func readError(table string, cause error) error {
	sentinel := ErrInputUnreadable
	if errors.Is(cause, fs.ErrNotExist) {
		sentinel = ErrInputNotFound
	}
	return &PipelineError{Stage: "read", Op: "open", Table: table, Cause: fmt.Errorf("%w: %w", sentinel, cause)}
}

// parseError creates an input stage error for a table that opened but
// could not be decoded.
func parseError(table string, cause error) error {
	return &PipelineError{Stage: "read", Op: "parse", Table: table, Cause: fmt.Errorf("%w: %w", ErrInputUnreadable, cause)}
}

// reconcileError creates a reconcile stage error.
func reconcileError(cause error) error {
	return &PipelineError{Stage: "reconcile", Op: "merge", Cause: fmt.Errorf("%w: %w", ErrReconcileFailed, cause)}
}

// writeError creates an output stage error for the given table.
func writeError(table string, cause error) error {
	return &PipelineError{Stage: "write", Op: "write", Table: table, Cause: fmt.Errorf("%w: %w", ErrWriteFailed, cause)}
}

// commitError creates an output stage error for a failed publish.
func commitError(cause error) error {
	return &PipelineError{Stage: "write", Op: "commit", Cause: fmt.Errorf("%w: %w", ErrWriteFailed, cause)}
}
