package shared

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	t.Run("generated", func(t *testing.T) {
		traceID := GetTraceID(SetTraceID(ctx, ""))
		_, err := uuid.Parse(traceID)
		require.NoError(t, err, "generated trace ID should be a UUID")
	})

	t.Run("supplied", func(t *testing.T) {
		assert.Equal(t, "abc-123", GetTraceID(SetTraceID(ctx, "abc-123")))
	})

	t.Run("oversized is replaced", func(t *testing.T) {
		long := strings.Repeat("x", maxTraceIDLength+1)
		traceID := GetTraceID(SetTraceID(ctx, long))
		assert.NotEqual(t, long, traceID)
		assert.NotEmpty(t, traceID)
	})
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123) // Not a string
	assert.Empty(t, GetTraceID(ctx))
}

func TestNewTraceIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewTraceID()
		assert.False(t, seen[id], "duplicate trace ID %s", id)
		seen[id] = true
	}
}
