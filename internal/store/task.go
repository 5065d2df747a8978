package store

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task collection persistence.
// Version: 1.0
type TaskStore interface {
	// Load returns the whole collection in stored order. An absent collection
	// is created empty. Returns ErrMalformedStore if the stored data cannot be
	// parsed as a collection.
	Load(ctx context.Context) ([]domain.Task, error)

	// Save replaces the stored collection with tasks.
	// Returns ErrNotWritable or ErrWriteFailed wrapped in a *StoreError.
	Save(ctx context.Context, tasks []domain.Task) error

	// NextID returns the identifier the next created task should receive.
	NextID(tasks []domain.Task) int64
}

// Backend keeps the serialized collection on some medium.
type Backend interface {
	// Read returns the stored bytes. When nothing is stored yet the backend
	// materializes an empty collection and returns its bytes (or none).
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored bytes entirely.
	Write(ctx context.Context, data []byte) error
}

// NextID returns 1 for an empty collection, otherwise the largest positive
// ID plus one. Non-positive IDs are ignored so a damaged entry cannot drag
// assignment backwards.
func NextID(tasks []domain.Task) int64 {
	var maxID int64
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}
