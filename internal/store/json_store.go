package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const entityTasks = "tasks"

// collectionSchema is the whole well-formedness check: an array of objects.
// Entries with unknown keys or loosely typed values still load; see
// domain.Task.UnmarshalJSON.
var collectionSchema = jsonschema.MustCompileString("tasks-collection.json", `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {"type": "object"}
}`)

// JSONStore implements TaskStore by encoding the collection as a single
// pretty-printed JSON array.
type JSONStore struct {
	backend Backend
	logger  *slog.Logger
}

// Compile-time check that JSONStore implements TaskStore
var _ TaskStore = (*JSONStore)(nil)

// NewJSONStore creates a JSONStore that persists through backend.
// If logger is nil, a default logger is used.
func NewJSONStore(backend Backend, logger *slog.Logger) *JSONStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONStore{
		backend: backend,
		logger:  logger.With(slog.String("component", "task_store")),
	}
}

// Load implements TaskStore.Load.
func (s *JSONStore) Load(ctx context.Context) ([]domain.Task, error) {
	data, err := s.backend.Read(ctx)
	if err != nil {
		return nil, NewStoreError(entityTasks, "load", "could not read collection", err)
	}

	tasks, err := decodeCollection(data)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored task collection is malformed",
			slog.Int("size_bytes", len(data)),
			slog.String("error", err.Error()))
		return nil, NewStoreError(entityTasks, "load", "could not parse collection", err)
	}

	s.logger.DebugContext(ctx, "task collection loaded", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Save implements TaskStore.Save.
func (s *JSONStore) Save(ctx context.Context, tasks []domain.Task) error {
	data, err := encodeCollection(tasks)
	if err != nil {
		return NewStoreError(entityTasks, "save", "could not encode collection",
			fmt.Errorf("%w: %v", ErrWriteFailed, err))
	}

	if err := s.backend.Write(ctx, data); err != nil {
		return NewStoreError(entityTasks, "save", "could not write collection", err)
	}

	s.logger.DebugContext(ctx, "task collection saved", slog.Int("count", len(tasks)))
	return nil
}

// NextID implements TaskStore.NextID.
func (s *JSONStore) NextID(tasks []domain.Task) int64 {
	return NextID(tasks)
}

// decodeCollection parses stored bytes. Empty input and a JSON null are an
// empty collection.
func decodeCollection(data []byte) ([]domain.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Task{}, nil
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}
	if doc == nil {
		return []domain.Task{}, nil
	}
	if err := collectionSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}

	tasks := make([]domain.Task, 0)
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStore, err)
	}
	return tasks, nil
}

// encodeCollection renders tasks with four-space indentation. HTML characters
// and non-ASCII text are written verbatim.
func encodeCollection(tasks []domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
