package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// RequestLogger logs one line per completed request with its status,
// size, and duration. 5xx responses are logged at ERROR, the rest at INFO.
// It is chi's RequestLogger driven by an slog formatter.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return chimw.RequestLogger(&slogFormatter{base: base})
}

// slogFormatter implements chimw.LogFormatter on top of the request's
// context logger, so lines carry the trace id.
type slogFormatter struct {
	base *slog.Logger
}

func (f *slogFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	return &slogEntry{
		logger:  logger.FromContextOrDefault(r.Context(), f.base),
		request: r,
	}
}

type slogEntry struct {
	logger  *slog.Logger
	request *http.Request
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	r := e.request
	e.logger.LogAttrs(r.Context(), level, "request completed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Duration("duration", elapsed),
		slog.String("user_agent", r.UserAgent()))
}

func (e *slogEntry) Panic(v interface{}, _ []byte) {
	e.logger.Error("request panicked",
		slog.String("panic", redact.String(fmt.Sprint(v))))
}
