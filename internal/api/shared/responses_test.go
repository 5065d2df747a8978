package shared

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "object",
			status:       http.StatusOK,
			data:         map[string]interface{}{"message": "success"},
			expectedBody: `{"message":"success"}`,
		},
		{
			name:         "empty array",
			status:       http.StatusOK,
			data:         []int{},
			expectedBody: `[]`,
		},
		{
			name:         "html and unicode unescaped",
			status:       http.StatusCreated,
			data:         map[string]string{"title": "<b>zażółć</b> & co"},
			expectedBody: `{"title":"<b>zażółć</b> & co"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedBody+"\n", w.Body.String())
		})
	}
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		opts     []ResponseOption
		expected string
	}{
		{
			name:     "plain",
			status:   http.StatusBadRequest,
			message:  "Invalid task ID",
			expected: `{"error":"Invalid task ID"}`,
		},
		{
			name:     "with details",
			status:   http.StatusBadRequest,
			message:  "Validation failed",
			opts:     []ResponseOption{WithDetails([]string{"Title is required"})},
			expected: `{"error":"Validation failed","details":["Title is required"]}`,
		},
		{
			name:     "with id",
			status:   http.StatusNotFound,
			message:  "Task not found",
			opts:     []ResponseOption{WithID(999)},
			expected: `{"error":"Task not found","id":999}`,
		},
		{
			name:     "with message",
			status:   http.StatusInternalServerError,
			message:  "Internal server error",
			opts:     []ResponseOption{WithMessage("An unexpected error occurred")},
			expected: `{"error":"Internal server error","message":"An unexpected error occurred"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			w := httptest.NewRecorder()

			RespondWithError(w, req, tc.status, tc.message, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.expected, w.Body.String())
		})
	}
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{name: "elevated client error", status: http.StatusNotFound, opts: []ResponseOption{WithElevatedLogLevel()}, wantLevel: "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
			ctx := SetTraceID(req.Context(), "trace-1")
			req = req.WithContext(logger.WithContext(ctx, log))
			w := httptest.NewRecorder()

			err := errors.New("open /var/lib/tasks/data/tasks.json: permission denied")
			RespondWithErrorAndLog(w, req, tc.status, "Tasks file is not writable", err, tc.opts...)

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, `{"error":"Tasks file is not writable"}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "/var/lib", "raw error must not leak")

			entry, err := logger.ParseLogEntry(buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, tc.wantLevel, entry["level"])
			assert.Equal(t, "trace-1", entry["trace_id"])
			assert.NotContains(t, entry["error"], "/var/lib", "logged error is redacted")
			assert.Equal(t, "*errors.errorString", entry["error_type"])
		})
	}
}
