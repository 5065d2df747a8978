package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store and backend implementations.
var (
	// ErrMalformedStore is returned when the persisted collection exists and is
	// non-empty but is not a JSON array of task objects.
	ErrMalformedStore = errors.New("malformed task collection")

	// ErrNotWritable is returned when the backend destination cannot be written
	// at all. It is detected before any write is attempted.
	ErrNotWritable = errors.New("tasks file is not writable")

	// ErrWriteFailed is returned when the write itself reports failure.
	ErrWriteFailed = errors.New("write failed")

	// ErrReadFailed is returned when the backend cannot read or create the collection.
	ErrReadFailed = errors.New("read failed")
)

// IsWriteError checks if the error is any kind of save failure.
func IsWriteError(err error) bool {
	return errors.Is(err, ErrNotWritable) || errors.Is(err, ErrWriteFailed)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type, "tasks" for the collection
	Operation string // The operation that failed (e.g., "load", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
