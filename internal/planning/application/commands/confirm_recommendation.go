package commands

import (
	"context"
	"time"

	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	"github.com/dayflow/dayflow/internal/shared/infrastructure/outbox"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// ConfirmRecommendationCommand commits a recommender-suggested slot to
// the plan. The suggestion itself was advisory; confirming it is the
// write that makes it real.
type ConfirmRecommendationCommand struct {
	UserID  uuid.UUID
	TaskID  uuid.UUID
	StartAt time.Time
	EndAt   time.Time
}

// ConfirmRecommendationHandler handles the ConfirmRecommendationCommand.
type ConfirmRecommendationHandler struct {
	taskRepo   taskDomain.Repository
	planRepo   planningDomain.PlanRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewConfirmRecommendationHandler creates a new handler.
func NewConfirmRecommendationHandler(
	taskRepo taskDomain.Repository,
	planRepo planningDomain.PlanRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *ConfirmRecommendationHandler {
	return &ConfirmRecommendationHandler{
		taskRepo:   taskRepo,
		planRepo:   planRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the command and returns the created slot's ID.
func (h *ConfirmRecommendationHandler) Handle(ctx context.Context, cmd ConfirmRecommendationCommand) (uuid.UUID, error) {
	task, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return uuid.Nil, err
	}
	if task == nil {
		return uuid.Nil, taskDomain.ErrNotFound
	}

	taskID := task.ID()
	slot, err := planningDomain.NewScheduledSlot(
		cmd.UserID, &taskID, task.Title(), cmd.StartAt, cmd.EndAt, false, planningDomain.SourceAI)
	if err != nil {
		return uuid.Nil, err
	}

	plan, err := h.planRepo.FindByUserAndDay(ctx, cmd.UserID, cmd.StartAt)
	if err != nil {
		return uuid.Nil, err
	}
	if plan == nil {
		plan = planningDomain.NewDayPlan(cmd.UserID, cmd.StartAt)
	}

	if err := plan.ConfirmRecommendedSlot(slot); err != nil {
		return uuid.Nil, err
	}
	if task.Status() != taskDomain.StatusScheduled {
		if err := task.MarkScheduled(); err != nil {
			return uuid.Nil, err
		}
	}

	metadata := sharedApplication.NewEventMetadata(cmd.UserID)
	events := append(plan.DomainEvents(), task.DomainEvents()...)
	sharedApplication.ApplyEventMetadata(events, metadata)

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(ctx context.Context) error {
		if err := h.planRepo.Save(ctx, plan); err != nil {
			return err
		}
		if err := h.taskRepo.Save(ctx, task); err != nil {
			return err
		}
		for _, event := range events {
			msg, err := outbox.NewMessage(event)
			if err != nil {
				return err
			}
			if err := h.outboxRepo.Save(ctx, msg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	plan.ClearDomainEvents()
	task.ClearDomainEvents()
	return slot.ID(), nil
}
