package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when task input fails validation.
	// ValidationErrors unwraps to it.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a task ID is missing, non-positive, or unparseable.
	ErrInvalidID = errors.New("invalid task ID")

	// ErrTaskNotFound is returned when no task in the collection has the requested ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyUpdate is returned when an update carries none of the recognized fields.
	ErrEmptyUpdate = errors.New("update contains no recognized fields")

	// ErrInvalidCompleted is returned when a completed value is outside the accepted set.
	ErrInvalidCompleted = errors.New("completed must be a boolean value")
)
