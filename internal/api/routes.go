package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
)

// Route is one entry of the route table.
type Route struct {
	Method string
	// Pattern uses ":name" for parameters, e.g. "/tasks/:id".
	Pattern     string
	Description string
	Handler     http.HandlerFunc
	// Listed routes are advertised by the info and not-found responses.
	Listed bool
}

// Signature returns "METHOD /pattern".
func (rt Route) Signature() string {
	return rt.Method + " " + rt.Pattern
}

// chiPattern converts ":name" segments to chi's "{name}" form.
func (rt Route) chiPattern() string {
	segments := strings.Split(rt.Pattern, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// RouterConfig holds the settings NewRouter needs.
type RouterConfig struct {
	// BasePath is stripped from request paths before routing.
	BasePath string
}

// NewRouter builds the HTTP handler for the API: middleware stack, route
// table, and the not-found fallback for unmatched paths and methods.
func NewRouter(h *TaskHandler, cfg RouterConfig, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.CORS)
	r.Use(chimw.RealIP)
	r.Use(middleware.Trace(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recover)
	r.Use(middleware.NormalizePath(cfg.BasePath))

	for _, route := range h.Routes() {
		r.Method(route.Method, route.chiPattern(), route.Handler)
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	return r
}
