package commands

import (
	"context"
	"time"

	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	"github.com/dayflow/dayflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// AddManualSlotCommand places a user-chosen slot on a day plan.
type AddManualSlotCommand struct {
	UserID  uuid.UUID
	TaskID  *uuid.UUID // nil for a manually blocked break
	Title   string
	StartAt time.Time
	EndAt   time.Time
	IsBreak bool
}

// AddManualSlotHandler handles the AddManualSlotCommand.
type AddManualSlotHandler struct {
	planRepo   planningDomain.PlanRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewAddManualSlotHandler creates a new handler.
func NewAddManualSlotHandler(
	planRepo planningDomain.PlanRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *AddManualSlotHandler {
	return &AddManualSlotHandler{planRepo: planRepo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the command and returns the created slot's ID.
func (h *AddManualSlotHandler) Handle(ctx context.Context, cmd AddManualSlotCommand) (uuid.UUID, error) {
	slot, err := planningDomain.NewScheduledSlot(
		cmd.UserID, cmd.TaskID, cmd.Title, cmd.StartAt, cmd.EndAt, cmd.IsBreak, planningDomain.SourceManual)
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

	if err := plan.AddManualSlot(slot); err != nil {
		return uuid.Nil, err
	}

	metadata := sharedApplication.NewEventMetadata(cmd.UserID)
	sharedApplication.ApplyEventMetadata(plan.DomainEvents(), metadata)

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(ctx context.Context) error {
		if err := h.planRepo.Save(ctx, plan); err != nil {
			return err
		}
		for _, event := range plan.DomainEvents() {
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
	return slot.ID(), nil
}
