package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
)

// Messages returned on success.
const (
	MsgRunning     = "TODO API is running"
	MsgTaskDeleted = "Task deleted successfully"
	HealthStatusOK = "OK"
)

// TaskHandler serves the task API endpoints.
type TaskHandler struct {
	service service.TaskService
	label   string
	clock   func() time.Time
	logger  *slog.Logger
	routes  []Route
}

// NewTaskHandler creates a new TaskHandler. label is reported by the health
// endpoint; a nil clock means time.Now.
func NewTaskHandler(taskService service.TaskService, label string, clock func() time.Time, log *slog.Logger) *TaskHandler {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = slog.Default()
	}

	h := &TaskHandler{
		service: taskService,
		label:   label,
		clock:   clock,
		logger:  log.With("component", "task_handler"),
	}
	h.routes = []Route{
		{Method: http.MethodGet, Pattern: "/", Description: "API information", Handler: h.Info},
		{Method: http.MethodGet, Pattern: "/health", Description: "Check API status", Handler: h.Health, Listed: true},
		{Method: http.MethodGet, Pattern: "/tasks", Description: "Get all tasks", Handler: h.ListTasks, Listed: true},
		{Method: http.MethodPost, Pattern: "/tasks", Description: "Create new task", Handler: h.CreateTask, Listed: true},
		{Method: http.MethodPut, Pattern: "/tasks/:id", Description: "Update task", Handler: h.UpdateTask, Listed: true},
		{Method: http.MethodDelete, Pattern: "/tasks/:id", Description: "Delete task", Handler: h.DeleteTask, Listed: true},
	}
	return h
}

// Routes returns the route table in priority order.
func (h *TaskHandler) Routes() []Route {
	return h.routes
}

// listedRoutes returns the routes advertised to clients.
func (h *TaskHandler) listedRoutes() EndpointMap {
	var listed EndpointMap
	for _, route := range h.routes {
		if route.Listed {
			listed = append(listed, route)
		}
	}
	return listed
}

// Info handles GET /.
func (h *TaskHandler) Info(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, InfoResponse{
		Message:   MsgRunning,
		Endpoints: h.listedRoutes(),
	})
}

// Health handles GET /health.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    HealthStatusOK,
		Timestamp: domain.FormatTimestamp(h.clock()),
		Server:    h.label,
	})
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context())
	if err != nil {
		handleError(w, r, err, OpList, 0)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	in, _, err := decodeTaskInput(r)
	if err != nil {
		handleError(w, r, err, OpCreate, 0)
		return
	}

	task, err := h.service.Create(r.Context(), in)
	if err != nil {
		handleError(w, r, err, OpCreate, 0)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := taskIDFromPath(r)
	if id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidTaskID)
		return
	}

	in, isObject, err := decodeTaskInput(r)
	if err != nil {
		handleError(w, r, err, OpUpdate, id)
		return
	}
	if !isObject || !in.HasFields() {
		handleError(w, r, domain.ErrEmptyUpdate, OpUpdate, id)
		return
	}

	task, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		handleError(w, r, err, OpUpdate, id)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := taskIDFromPath(r)
	if id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, MsgInvalidTaskID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, r, err, OpDelete, id)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteResponse{
		Message: MsgTaskDeleted,
		ID:      id,
	})
}

// NotFound answers every request that no route accepts.
func (h *TaskHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	listed := h.listedRoutes()
	endpoints := make([]string, 0, len(listed))
	for _, route := range listed {
		endpoints = append(endpoints, route.Signature())
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("no route matched",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))

	shared.RespondWithJSON(w, r, http.StatusNotFound, NotFoundResponse{
		Error:              MsgEndpointNotFound,
		Method:             r.Method,
		Path:               strings.Trim(r.URL.Path, "/"),
		AvailableEndpoints: endpoints,
	})
}
