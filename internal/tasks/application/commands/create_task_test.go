package commands

import (
	"context"
	"testing"
	"time"

	"github.com/dayflow/dayflow/internal/shared/infrastructure/outbox"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/dayflow/dayflow/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockTaskRepo is a mock implementation of task.Repository.
type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *taskDomain.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, id uuid.UUID) (*taskDomain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskDomain.Task), args.Error(1)
}

func (m *mockTaskRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*taskDomain.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskDomain.Task), args.Error(1)
}

func (m *mockTaskRepo) FindPlannable(ctx context.Context, userID uuid.UUID) ([]*taskDomain.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskDomain.Task), args.Error(1)
}

func (m *mockTaskRepo) FindCompletedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*taskDomain.Task, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*taskDomain.Task), args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, errMsg, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

// passthroughUnitOfWork runs the work function on the caller's context.
type passthroughUnitOfWork struct{}

func (passthroughUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (passthroughUnitOfWork) Commit(ctx context.Context) error                   { return nil }
func (passthroughUnitOfWork) Rollback(ctx context.Context) error                 { return nil }

func TestCreateTaskHandler(t *testing.T) {
	userID := uuid.New()
	deadline := time.Date(2026, 3, 5, 17, 0, 0, 0, time.UTC)

	taskRepo := new(mockTaskRepo)
	outboxRepo := new(mockOutboxRepo)
	taskRepo.On("Save", mock.Anything, mock.AnythingOfType("*task.Task")).Return(nil)
	outboxRepo.On("Save", mock.Anything, mock.AnythingOfType("*outbox.Message")).Return(nil)

	handler := NewCreateTaskHandler(taskRepo, outboxRepo, passthroughUnitOfWork{})
	id, err := handler.Handle(context.Background(), CreateTaskCommand{
		UserID:          userID,
		Title:           "prepare demo",
		Description:     "walk through the new flow",
		Priority:        4,
		DurationMinutes: 45,
		Energy:          "high",
		Deadline:        &deadline,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	taskRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
}

func TestCreateTaskHandler_Validation(t *testing.T) {
	handler := NewCreateTaskHandler(new(mockTaskRepo), new(mockOutboxRepo), passthroughUnitOfWork{})

	tests := []struct {
		name    string
		cmd     CreateTaskCommand
		wantErr error
	}{
		{
			"priority out of range",
			CreateTaskCommand{Title: "x", Priority: 6, DurationMinutes: 30, Energy: "low"},
			value_objects.ErrInvalidPriority,
		},
		{
			"non-positive duration",
			CreateTaskCommand{Title: "x", Priority: 3, DurationMinutes: 0, Energy: "low"},
			value_objects.ErrInvalidDuration,
		},
		{
			"unknown energy",
			CreateTaskCommand{Title: "x", Priority: 3, DurationMinutes: 30, Energy: "extreme"},
			value_objects.ErrInvalidEnergyRequirement,
		},
		{
			"empty title",
			CreateTaskCommand{Title: "   ", Priority: 3, DurationMinutes: 30, Energy: "low"},
			taskDomain.ErrEmptyTitle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompleteTaskHandler(t *testing.T) {
	userID := uuid.New()
	task := mustNewTask(t, userID, "ship release", 4, 30)

	taskRepo := new(mockTaskRepo)
	outboxRepo := new(mockOutboxRepo)
	taskRepo.On("FindByID", mock.Anything, task.ID()).Return(task, nil)
	taskRepo.On("Save", mock.Anything, task).Return(nil)
	outboxRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	handler := NewCompleteTaskHandler(taskRepo, outboxRepo, passthroughUnitOfWork{})
	require.NoError(t, handler.Handle(context.Background(), CompleteTaskCommand{UserID: userID, TaskID: task.ID()}))

	assert.Equal(t, taskDomain.StatusDone, task.Status())
	assert.NotNil(t, task.CompletedAt())

	// completing twice is rejected
	err := handler.Handle(context.Background(), CompleteTaskCommand{UserID: userID, TaskID: task.ID()})
	assert.Error(t, err)
}

func TestPostponeTaskHandler_IncrementsCount(t *testing.T) {
	userID := uuid.New()
	task := mustNewTask(t, userID, "clean inbox", 2, 20)

	taskRepo := new(mockTaskRepo)
	outboxRepo := new(mockOutboxRepo)
	taskRepo.On("FindByID", mock.Anything, task.ID()).Return(task, nil)
	taskRepo.On("Save", mock.Anything, task).Return(nil)
	outboxRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	handler := NewPostponeTaskHandler(taskRepo, outboxRepo, passthroughUnitOfWork{})
	require.NoError(t, handler.Handle(context.Background(), PostponeTaskCommand{UserID: userID, TaskID: task.ID()}))

	assert.Equal(t, 1, task.PostponeCount())
	assert.Equal(t, taskDomain.StatusPostponed, task.Status())
}

func TestUpdateTaskHandler(t *testing.T) {
	userID := uuid.New()
	task := mustNewTask(t, userID, "draft email", 2, 20)

	taskRepo := new(mockTaskRepo)
	taskRepo.On("FindByID", mock.Anything, task.ID()).Return(task, nil)
	taskRepo.On("Save", mock.Anything, task).Return(nil)

	newTitle := "draft launch email"
	newPriority := 4
	handler := NewUpdateTaskHandler(taskRepo, passthroughUnitOfWork{})
	require.NoError(t, handler.Handle(context.Background(), UpdateTaskCommand{
		TaskID:   task.ID(),
		Title:    &newTitle,
		Priority: &newPriority,
	}))

	assert.Equal(t, newTitle, task.Title())
	assert.Equal(t, value_objects.PriorityHigh, task.Priority())
}

func TestHandlers_TaskMissing(t *testing.T) {
	taskRepo := new(mockTaskRepo)
	taskRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	ctx := context.Background()
	id := uuid.New()

	assert.ErrorIs(t,
		NewCompleteTaskHandler(taskRepo, new(mockOutboxRepo), passthroughUnitOfWork{}).
			Handle(ctx, CompleteTaskCommand{TaskID: id}),
		taskDomain.ErrNotFound)
	assert.ErrorIs(t,
		NewPostponeTaskHandler(taskRepo, new(mockOutboxRepo), passthroughUnitOfWork{}).
			Handle(ctx, PostponeTaskCommand{TaskID: id}),
		taskDomain.ErrNotFound)
	assert.ErrorIs(t,
		NewUpdateTaskHandler(taskRepo, passthroughUnitOfWork{}).
			Handle(ctx, UpdateTaskCommand{TaskID: id}),
		taskDomain.ErrNotFound)
}

func mustNewTask(t *testing.T, userID uuid.UUID, title string, priority, minutes int) *taskDomain.Task {
	t.Helper()
	p, err := value_objects.NewPriority(priority)
	require.NoError(t, err)
	d, err := value_objects.NewDuration(minutes)
	require.NoError(t, err)
	task, err := taskDomain.NewTask(userID, title, p, d, value_objects.EnergyMedium, nil)
	require.NoError(t, err)
	task.ClearDomainEvents()
	return task
}
