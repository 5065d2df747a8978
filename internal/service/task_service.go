package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides the task operations exposed by the API.
type TaskService interface {
	// List returns every task in stored order.
	List(ctx context.Context) ([]domain.Task, error)

	// Create validates in, assigns the next ID, and appends the new task.
	// Returns domain.ValidationErrors when the input is rejected.
	Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error)

	// Update applies the present fields of in to the task with the given ID.
	// Returns domain.ErrInvalidID, domain.ErrEmptyUpdate,
	// domain.ValidationErrors, or domain.ErrTaskNotFound.
	Update(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error)

	// Delete removes the task with the given ID, keeping the order of the rest.
	// Returns domain.ErrInvalidID or domain.ErrTaskNotFound.
	Delete(ctx context.Context, id int64) error
}

// Clock returns the current time. It is replaced in tests.
type Clock func() time.Time

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store  store.TaskStore
	clock  Clock
	logger *slog.Logger

	// mu serializes load-mutate-save cycles within this process.
	mu sync.RWMutex
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil. A nil clock means time.Now.
func NewTaskService(taskStore store.TaskStore, clock Clock, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:  taskStore,
		clock:  clock,
		logger: logger.With("component", "task_service"),
	}, nil
}

// List implements TaskService.List.
func (s *taskServiceImpl) List(ctx context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to load tasks", err)
	}
	return tasks, nil
}

// Create implements TaskService.Create.
func (s *taskServiceImpl) Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if errs := domain.ValidateTaskInput(in, false); errs != nil {
		return nil, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, NewTaskServiceError("create_task", "failed to load tasks", err)
	}

	task := domain.NewTask(s.store.NextID(tasks), in, s.clock())
	tasks = append(tasks, task)

	if err := s.store.Save(ctx, tasks); err != nil {
		s.logger.Error("failed to save created task",
			"error", err,
			"task_id", task.ID)
		return nil, NewTaskServiceError("create_task", "failed to save tasks", err)
	}

	s.logger.Info("task created", "task_id", task.ID)
	return &task, nil
}

// Update implements TaskService.Update.
func (s *taskServiceImpl) Update(ctx context.Context, id int64, in domain.TaskInput) (*domain.Task, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	if !in.HasFields() {
		return nil, domain.ErrEmptyUpdate
	}
	if errs := domain.ValidateTaskInput(in, true); errs != nil {
		return nil, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to load tasks", err)
	}

	idx := indexOf(tasks, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: id %d", domain.ErrTaskNotFound, id)
	}

	if err := tasks[idx].Apply(in, s.clock()); err != nil {
		return nil, NewTaskServiceError("update_task", "failed to apply update", err)
	}

	if err := s.store.Save(ctx, tasks); err != nil {
		s.logger.Error("failed to save updated task",
			"error", err,
			"task_id", id)
		return nil, NewTaskServiceError("update_task", "failed to save tasks", err)
	}

	s.logger.Info("task updated", "task_id", id)
	updated := tasks[idx]
	return &updated, nil
}

// Delete implements TaskService.Delete.
func (s *taskServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return NewTaskServiceError("delete_task", "failed to load tasks", err)
	}

	idx := indexOf(tasks, id)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrTaskNotFound, id)
	}

	remaining := make([]domain.Task, 0, len(tasks)-1)
	remaining = append(remaining, tasks[:idx]...)
	remaining = append(remaining, tasks[idx+1:]...)

	if err := s.store.Save(ctx, remaining); err != nil {
		s.logger.Error("failed to save after delete",
			"error", err,
			"task_id", id)
		return NewTaskServiceError("delete_task", "failed to save tasks", err)
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// indexOf returns the position of the first task with id, or -1.
func indexOf(tasks []domain.Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
