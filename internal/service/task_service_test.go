package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskStore is a mock implementation of store.TaskStore
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Load(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskStore) Save(ctx context.Context, tasks []domain.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskStore) NextID(tasks []domain.Task) int64 {
	return store.NextID(tasks)
}

var fixedNow = time.Date(2025, 4, 1, 12, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

func fixedClock() time.Time { return fixedNow }

func input(t *testing.T, body string) domain.TaskInput {
	t.Helper()
	var in domain.TaskInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func newMemoryService(t *testing.T, initial string) (TaskService, *store.MemoryBackend) {
	t.Helper()
	var data []byte
	if initial != "" {
		data = []byte(initial)
	}
	backend := store.NewMemoryBackend(data)
	svc, err := NewTaskService(store.NewJSONStore(backend, nil), fixedClock, nil)
	require.NoError(t, err)
	return svc, backend
}

const seeded = `[
    {"id": 1, "title": "First", "description": "", "completed": false, "createdAt": "2025-01-01T10:00:00+00:00"},
    {"id": 4, "title": "Second", "description": "d", "completed": true, "createdAt": "2025-01-02T10:00:00+00:00"},
    {"id": 2, "title": "Third", "description": "", "completed": false, "createdAt": "2025-01-03T10:00:00+00:00"}
]`

func TestNewTaskService(t *testing.T) {
	_, err := NewTaskService(nil, nil, nil)
	require.Error(t, err)
	var svcErr *TaskServiceError
	assert.ErrorAs(t, err, &svcErr)

	svc, err := NewTaskService(&MockTaskStore{}, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestList(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		svc, _ := newMemoryService(t, "")
		tasks, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("stored order", func(t *testing.T) {
		svc, _ := newMemoryService(t, seeded)
		tasks, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, []int64{1, 4, 2}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	})

	t.Run("malformed store", func(t *testing.T) {
		svc, _ := newMemoryService(t, "{not json")
		_, err := svc.List(context.Background())
		assert.ErrorIs(t, err, store.ErrMalformedStore)
	})
}

func TestCreate(t *testing.T) {
	t.Run("assigns next id and trims fields", func(t *testing.T) {
		svc, _ := newMemoryService(t, seeded)

		task, err := svc.Create(context.Background(), input(t, `{"title":"  Kup mleko ","description":" 2 litry ","completed":true}`))

		require.NoError(t, err)
		assert.Equal(t, int64(5), task.ID)
		assert.Equal(t, "Kup mleko", task.Title)
		assert.Equal(t, "2 litry", task.Description)
		assert.False(t, task.Completed, "new tasks always start incomplete")
		assert.Equal(t, "2025-04-01T12:30:00+02:00", task.CreatedAt)
		assert.Empty(t, task.UpdatedAt)

		tasks, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 4)
		assert.Equal(t, *task, tasks[3], "created task is appended")
	})

	t.Run("first task gets id 1", func(t *testing.T) {
		svc, _ := newMemoryService(t, "")
		task, err := svc.Create(context.Background(), input(t, `{"title":"A"}`))
		require.NoError(t, err)
		assert.Equal(t, int64(1), task.ID)
		assert.Equal(t, "", task.Description)
	})

	t.Run("validation failure leaves store untouched", func(t *testing.T) {
		svc, backend := newMemoryService(t, seeded)
		before := backend.Bytes()

		_, err := svc.Create(context.Background(), input(t, `{"title":"   ","completed":"maybe"}`))

		var verrs domain.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, domain.ValidationErrors{domain.MsgTitleRequired, domain.MsgCompletedNotBoolean}, verrs)
		assert.Equal(t, before, backend.Bytes())
	})

	t.Run("save failure is reported", func(t *testing.T) {
		svc, backend := newMemoryService(t, seeded)
		backend.WriteErr = store.ErrNotWritable

		_, err := svc.Create(context.Background(), input(t, `{"title":"A"}`))

		assert.ErrorIs(t, err, store.ErrNotWritable)
		var svcErr *TaskServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_task", svcErr.Operation)
	})

	t.Run("load failure is reported", func(t *testing.T) {
		ms := &MockTaskStore{}
		ms.On("Load", mock.Anything).Return(nil, store.ErrReadFailed)
		svc, err := NewTaskService(ms, fixedClock, nil)
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), input(t, `{"title":"A"}`))

		assert.ErrorIs(t, err, store.ErrReadFailed)
		ms.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		body    string
		wantErr error
		check   func(t *testing.T, task *domain.Task)
	}{
		{
			name: "partial update keeps other fields",
			id:   4,
			body: `{"completed":"false"}`,
			check: func(t *testing.T, task *domain.Task) {
				assert.Equal(t, "Second", task.Title)
				assert.Equal(t, "d", task.Description)
				assert.False(t, task.Completed)
				assert.Equal(t, "2025-01-02T10:00:00+00:00", task.CreatedAt)
				assert.Equal(t, "2025-04-01T12:30:00+02:00", task.UpdatedAt)
			},
		},
		{
			name: "blank description overwrites",
			id:   4,
			body: `{"description":"   "}`,
			check: func(t *testing.T, task *domain.Task) {
				assert.Equal(t, "", task.Description)
			},
		},
		{
			name: "title and numeric completed",
			id:   1,
			body: `{"title":" Renamed ","completed":1}`,
			check: func(t *testing.T, task *domain.Task) {
				assert.Equal(t, "Renamed", task.Title)
				assert.True(t, task.Completed)
			},
		},
		{name: "zero id", id: 0, body: `{"title":"x"}`, wantErr: domain.ErrInvalidID},
		{name: "negative id", id: -3, body: `{"title":"x"}`, wantErr: domain.ErrInvalidID},
		{name: "no fields", id: 1, body: `{"other":1}`, wantErr: domain.ErrEmptyUpdate},
		{name: "only nulls", id: 1, body: `{"title":null}`, wantErr: domain.ErrEmptyUpdate},
		{name: "blank title", id: 1, body: `{"title":"  "}`, wantErr: domain.ErrValidation},
		{name: "missing task", id: 99, body: `{"title":"x"}`, wantErr: domain.ErrTaskNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newMemoryService(t, seeded)

			task, err := svc.Update(context.Background(), tt.id, input(t, tt.body))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, task.ID)
			tt.check(t, task)

			tasks, err := svc.List(context.Background())
			require.NoError(t, err)
			for _, stored := range tasks {
				if stored.ID == tt.id {
					assert.Equal(t, *task, stored, "update is persisted")
				}
			}
		})
	}
}

func TestUpdateSaveFailure(t *testing.T) {
	svc, backend := newMemoryService(t, seeded)
	backend.WriteErr = store.ErrWriteFailed

	_, err := svc.Update(context.Background(), 1, input(t, `{"title":"x"}`))

	assert.ErrorIs(t, err, store.ErrWriteFailed)
	assert.True(t, store.IsWriteError(err))
}

func TestDelete(t *testing.T) {
	t.Run("removes and keeps order", func(t *testing.T) {
		svc, _ := newMemoryService(t, seeded)

		require.NoError(t, svc.Delete(context.Background(), 4))

		tasks, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, int64(1), tasks[0].ID)
		assert.Equal(t, int64(2), tasks[1].ID)
	})

	t.Run("ids are not reused below the max", func(t *testing.T) {
		svc, _ := newMemoryService(t, seeded)
		require.NoError(t, svc.Delete(context.Background(), 2))

		task, err := svc.Create(context.Background(), input(t, `{"title":"new"}`))
		require.NoError(t, err)
		assert.Equal(t, int64(5), task.ID)
	})

	t.Run("errors", func(t *testing.T) {
		svc, backend := newMemoryService(t, seeded)
		before := backend.Bytes()

		assert.ErrorIs(t, svc.Delete(context.Background(), 0), domain.ErrInvalidID)
		assert.ErrorIs(t, svc.Delete(context.Background(), 42), domain.ErrTaskNotFound)
		assert.Equal(t, before, backend.Bytes())

		backend.WriteErr = errors.New("disk full")
		err := svc.Delete(context.Background(), 1)
		var svcErr *TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "delete_task", svcErr.Operation)
	})
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	svc, _ := newMemoryService(t, "")
	const n = 20

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := svc.Create(context.Background(), domain.TaskInput{
				Title: domain.Text{Present: true, Value: "concurrent"},
			})
			if err == nil {
				ids <- task.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	tasks, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, n, "no create was lost")
}
