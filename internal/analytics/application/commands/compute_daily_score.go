package commands

import (
	"context"
	"time"

	"github.com/dayflow/dayflow/internal/analytics/application/services"
	analyticsDomain "github.com/dayflow/dayflow/internal/analytics/domain"
	planningServices "github.com/dayflow/dayflow/internal/planning/application/services"
	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// ComputeDailyScoreCommand computes (or recomputes) the score for one
// user day. Once the day has fully elapsed the result is finalized and
// written through to the cache.
type ComputeDailyScoreCommand struct {
	UserID uuid.UUID
	Day    time.Time
	Now    time.Time // zero means wall clock
}

// ComputeDailyScoreHandler handles the ComputeDailyScoreCommand.
type ComputeDailyScoreHandler struct {
	taskRepo   taskDomain.Repository
	planRepo   planningDomain.PlanRepository
	scoreRepo  analyticsDomain.ScoreRepository
	scoreCache analyticsDomain.ScoreCache
	calculator *services.ScoreCalculator
	scoring    *planningServices.ScoringModel
	workSpan   planningServices.WorkSpan
	uow        sharedApplication.UnitOfWork
}

// NewComputeDailyScoreHandler creates a new handler.
func NewComputeDailyScoreHandler(
	taskRepo taskDomain.Repository,
	planRepo planningDomain.PlanRepository,
	scoreRepo analyticsDomain.ScoreRepository,
	scoreCache analyticsDomain.ScoreCache,
	calculator *services.ScoreCalculator,
	scoring *planningServices.ScoringModel,
	workSpan planningServices.WorkSpan,
	uow sharedApplication.UnitOfWork,
) *ComputeDailyScoreHandler {
	return &ComputeDailyScoreHandler{
		taskRepo:   taskRepo,
		planRepo:   planRepo,
		scoreRepo:  scoreRepo,
		scoreCache: scoreCache,
		calculator: calculator,
		scoring:    scoring,
		workSpan:   workSpan,
		uow:        uow,
	}
}

// Handle executes the command.
func (h *ComputeDailyScoreHandler) Handle(ctx context.Context, cmd ComputeDailyScoreCommand) (*analyticsDomain.DailyScore, error) {
	now := cmd.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	day := time.Date(cmd.Day.Year(), cmd.Day.Month(), cmd.Day.Day(), 0, 0, 0, 0, time.UTC)

	plan, err := h.planRepo.FindByUserAndDay(ctx, cmd.UserID, day)
	if err != nil {
		return nil, err
	}

	var (
		outcomes           []services.TaskOutcome
		postponeIncrements int
		busy               time.Duration
	)
	if plan != nil {
		for _, slot := range plan.Slots() {
			busy += slot.Duration()
			if slot.IsBreak() || slot.TaskID() == nil {
				continue
			}
			task, err := h.taskRepo.FindByID(ctx, *slot.TaskID())
			if err != nil {
				return nil, err
			}
			if task == nil {
				continue
			}
			outcomes = append(outcomes, services.TaskOutcome{
				TaskID:    task.ID(),
				Score:     h.scoring.CompositeScore(task.Priority(), task.Deadline(), task.PostponeCount(), now),
				Completed: completedOn(task, day),
			})
			if task.Status() == taskDomain.StatusPostponed {
				postponeIncrements++
			}
		}
	}

	finalized := !now.Before(day.Add(24 * time.Hour))
	available := h.workSpan.End - h.workSpan.Start

	score := h.calculator.ComputeDaily(
		cmd.UserID, day, outcomes, postponeIncrements, busy, available, finalized, now)

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(ctx context.Context) error {
		return h.scoreRepo.Save(ctx, score)
	})
	if err != nil {
		return nil, err
	}

	// Only immutable scores are cached; a live day keeps changing.
	if finalized && h.scoreCache != nil {
		_ = h.scoreCache.Set(ctx, score)
	}
	return &score, nil
}

func completedOn(task *taskDomain.Task, day time.Time) bool {
	if !task.IsDone() || task.CompletedAt() == nil {
		return false
	}
	done := task.CompletedAt().UTC()
	return !done.Before(day) && done.Before(day.Add(24*time.Hour))
}
