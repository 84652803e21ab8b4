package commands

import (
	"context"
	"testing"
	"time"

	"github.com/dayflow/dayflow/internal/analytics/application/services"
	analyticsDomain "github.com/dayflow/dayflow/internal/analytics/domain"
	planningServices "github.com/dayflow/dayflow/internal/planning/application/services"
	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
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

// mockPlanRepo is a mock implementation of planning.PlanRepository.
type mockPlanRepo struct {
	mock.Mock
}

func (m *mockPlanRepo) Save(ctx context.Context, plan *planningDomain.DayPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *mockPlanRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*planningDomain.DayPlan, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planningDomain.DayPlan), args.Error(1)
}

func (m *mockPlanRepo) FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*planningDomain.DayPlan, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*planningDomain.DayPlan), args.Error(1)
}

func (m *mockPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// mockScoreRepo is a mock implementation of analytics.ScoreRepository.
type mockScoreRepo struct {
	mock.Mock
}

func (m *mockScoreRepo) Save(ctx context.Context, score analyticsDomain.DailyScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *mockScoreRepo) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*analyticsDomain.DailyScore, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyticsDomain.DailyScore), args.Error(1)
}

func (m *mockScoreRepo) FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]analyticsDomain.DailyScore, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analyticsDomain.DailyScore), args.Error(1)
}

// mockScoreCache is a mock implementation of analytics.ScoreCache.
type mockScoreCache struct {
	mock.Mock
}

func (m *mockScoreCache) Get(ctx context.Context, userID uuid.UUID, day time.Time) (*analyticsDomain.DailyScore, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analyticsDomain.DailyScore), args.Error(1)
}

func (m *mockScoreCache) Set(ctx context.Context, score analyticsDomain.DailyScore) error {
	args := m.Called(ctx, score)
	return args.Error(0)
}

func (m *mockScoreCache) Invalidate(ctx context.Context, userID uuid.UUID, day time.Time) error {
	args := m.Called(ctx, userID, day)
	return args.Error(0)
}

// passthroughUnitOfWork runs the work function on the caller's context.
type passthroughUnitOfWork struct{}

func (passthroughUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (passthroughUnitOfWork) Commit(ctx context.Context) error                   { return nil }
func (passthroughUnitOfWork) Rollback(ctx context.Context) error                 { return nil }

func newHandler(taskRepo *mockTaskRepo, planRepo *mockPlanRepo, scoreRepo *mockScoreRepo, cache *mockScoreCache) *ComputeDailyScoreHandler {
	var scoreCache analyticsDomain.ScoreCache
	if cache != nil {
		scoreCache = cache
	}
	return NewComputeDailyScoreHandler(
		taskRepo,
		planRepo,
		scoreRepo,
		scoreCache,
		services.NewScoreCalculator(services.DefaultScoreConfig()),
		planningServices.NewScoringModel(planningServices.DefaultScoringConfig()),
		planningServices.DefaultWorkSpan(),
		passthroughUnitOfWork{},
	)
}

func scoredTask(t *testing.T, userID uuid.UUID, priority int, completed bool, day time.Time) *taskDomain.Task {
	t.Helper()
	p, err := value_objects.NewPriority(priority)
	require.NoError(t, err)
	d, err := value_objects.NewDuration(60)
	require.NoError(t, err)
	task, err := taskDomain.NewTask(userID, "t", p, d, value_objects.EnergyMedium, nil)
	require.NoError(t, err)
	if completed {
		require.NoError(t, task.Complete())
	}
	task.ClearDomainEvents()
	return task
}

func planWithTasks(t *testing.T, userID uuid.UUID, day time.Time, tasks ...*taskDomain.Task) *planningDomain.DayPlan {
	t.Helper()
	plan := planningDomain.NewDayPlan(userID, day)
	slots := make([]*planningDomain.ScheduledSlot, 0, len(tasks))
	start := day.Add(9 * time.Hour)
	for _, task := range tasks {
		id := task.ID()
		slot, err := planningDomain.NewScheduledSlot(userID, &id, task.Title(),
			start, start.Add(time.Hour), false, planningDomain.SourceAuto)
		require.NoError(t, err)
		slots = append(slots, slot)
		start = start.Add(time.Hour)
	}
	require.NoError(t, plan.ReplaceGenerated(slots))
	plan.ClearDomainEvents()
	return plan
}

func TestComputeDailyScore_VacuousDayIsHundred(t *testing.T) {
	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(30 * time.Hour) // day has elapsed

	planRepo := new(mockPlanRepo)
	scoreRepo := new(mockScoreRepo)
	cache := new(mockScoreCache)

	planRepo.On("FindByUserAndDay", mock.Anything, userID, day).Return(nil, nil)
	scoreRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil)

	handler := newHandler(new(mockTaskRepo), planRepo, scoreRepo, cache)
	score, err := handler.Handle(context.Background(), ComputeDailyScoreCommand{UserID: userID, Day: day, Now: now})
	require.NoError(t, err)

	assert.Equal(t, 100.0, score.Value)
	assert.True(t, score.Finalized)
	cache.AssertCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestComputeDailyScore_PartialCompletion(t *testing.T) {
	userID := uuid.New()
	// Complete stamps the wall clock, so the plan day must be today for
	// the completion to count toward it.
	today := time.Now().UTC()
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	now := day.Add(30 * time.Hour)

	done := scoredTask(t, userID, 3, true, day)
	open := scoredTask(t, userID, 3, false, day)
	plan := planWithTasks(t, userID, day, done, open)

	taskRepo := new(mockTaskRepo)
	planRepo := new(mockPlanRepo)
	scoreRepo := new(mockScoreRepo)
	cache := new(mockScoreCache)

	planRepo.On("FindByUserAndDay", mock.Anything, userID, day).Return(plan, nil)
	taskRepo.On("FindByID", mock.Anything, done.ID()).Return(done, nil)
	taskRepo.On("FindByID", mock.Anything, open.ID()).Return(open, nil)
	scoreRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	cache.On("Set", mock.Anything, mock.Anything).Return(nil)

	handler := newHandler(taskRepo, planRepo, scoreRepo, cache)
	score, err := handler.Handle(context.Background(), ComputeDailyScoreCommand{UserID: userID, Day: day, Now: now})
	require.NoError(t, err)

	assert.InDelta(t, 50.0, score.Value, 1e-9, "equal-score tasks, one of two completed")
	assert.InDelta(t, 0.5, score.CompletionRatio, 1e-9)
}

func TestComputeDailyScore_LiveDayNotCachedNotFinalized(t *testing.T) {
	userID := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	now := day.Add(12 * time.Hour) // mid-day

	planRepo := new(mockPlanRepo)
	scoreRepo := new(mockScoreRepo)
	cache := new(mockScoreCache)

	planRepo.On("FindByUserAndDay", mock.Anything, userID, day).Return(nil, nil)
	scoreRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	handler := newHandler(new(mockTaskRepo), planRepo, scoreRepo, cache)
	score, err := handler.Handle(context.Background(), ComputeDailyScoreCommand{UserID: userID, Day: day, Now: now})
	require.NoError(t, err)

	assert.False(t, score.Finalized)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}
