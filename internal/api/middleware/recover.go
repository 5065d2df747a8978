package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
)

// Fallback response for failures no handler accounted for.
const (
	InternalErrorMessage = "Internal server error"
	InternalErrorDetail  = "An unexpected error occurred"
)

// Recover turns a panic in a later handler into the generic 500 response.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
// The panic is also reported to the request's chi log entry, if any.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			if entry := chimw.GetLogEntry(r); entry != nil {
				entry.Panic(rec, debug.Stack())
			}

			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				InternalErrorMessage, fmt.Errorf("recovered from %v", rec),
				shared.WithMessage(InternalErrorDetail))
		}()

		next.ServeHTTP(w, r)
	})
}
