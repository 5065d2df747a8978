package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Operation identifies the handler an error came from. Write failures are
// reported with a different message per operation.
type Operation string

const (
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Client-facing error messages.
const (
	MsgInvalidJSON      = "Invalid JSON in request body"
	MsgValidationFailed = "Validation failed"
	MsgInvalidTaskID    = "Invalid task ID"
	MsgEmptyBody        = "Request body cannot be empty"
	MsgTaskNotFound     = "Task not found"
	MsgNotWritable      = "Tasks file is not writable"
	MsgEndpointNotFound = "Endpoint not found"
)

var writeFailedMessages = map[Operation]string{
	OpCreate: "Failed to save task to file",
	OpUpdate: "Failed to update task",
	OpDelete: "Failed to delete task",
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrMalformedJSON),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmptyUpdate):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message shown to clients for err raised by
// op. Unclassified errors get the generic internal error message.
func GetSafeErrorMessage(err error, op Operation) string {
	switch {
	case err == nil:
		return middleware.InternalErrorMessage
	case errors.Is(err, shared.ErrMalformedJSON):
		return MsgInvalidJSON
	case errors.Is(err, domain.ErrValidation):
		return MsgValidationFailed
	case errors.Is(err, domain.ErrInvalidID):
		return MsgInvalidTaskID
	case errors.Is(err, domain.ErrEmptyUpdate):
		return MsgEmptyBody
	case errors.Is(err, domain.ErrTaskNotFound):
		return MsgTaskNotFound
	case errors.Is(err, store.ErrNotWritable):
		return MsgNotWritable
	case errors.Is(err, store.ErrWriteFailed):
		if msg, ok := writeFailedMessages[op]; ok {
			return msg
		}
	}
	return middleware.InternalErrorMessage
}

// handleError writes the error envelope for err. id is reported with
// not-found errors.
func handleError(w http.ResponseWriter, r *http.Request, err error, op Operation, id int64) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err, op)

	var opts []shared.ResponseOption
	var validationErrs domain.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		opts = append(opts, shared.WithDetails(validationErrs))
	case errors.Is(err, domain.ErrTaskNotFound):
		opts = append(opts, shared.WithID(id))
	case errors.Is(err, shared.ErrMalformedJSON):
		opts = append(opts, shared.WithElevatedLogLevel())
	case message == middleware.InternalErrorMessage:
		opts = append(opts, shared.WithMessage(middleware.InternalErrorDetail))
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
