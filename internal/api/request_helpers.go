package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// taskIDFromPath returns the lenient id from the {id} route parameter. The
// parameter is still percent-encoded, so "%35" is not read as 5.
func taskIDFromPath(r *http.Request) int64 {
	return domain.ParseID(chi.URLParam(r, "id"))
}

// decodeTaskInput reads the request body into a TaskInput. Bodies that are
// well-formed JSON but not objects decode to an input with no fields; the
// second result reports whether the body was an object.
func decodeTaskInput(r *http.Request) (domain.TaskInput, bool, error) {
	var in domain.TaskInput

	raw, err := shared.ReadJSONBody(r)
	if err != nil {
		return in, false, err
	}
	if !shared.IsJSONObject(raw) {
		return in, false, nil
	}
	if err := shared.DecodeJSON(raw, &in); err != nil {
		return in, true, err
	}
	return in, true, nil
}
