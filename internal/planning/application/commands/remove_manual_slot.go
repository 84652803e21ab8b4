package commands

import (
	"context"
	"errors"
	"time"

	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	"github.com/google/uuid"
)

// ErrPlanNotFound is returned when no plan exists for the requested day.
var ErrPlanNotFound = errors.New("no plan exists for that day")

// RemoveManualSlotCommand deletes a user-placed slot from a day plan.
type RemoveManualSlotCommand struct {
	UserID uuid.UUID
	Day    time.Time
	SlotID uuid.UUID
}

// RemoveManualSlotHandler handles the RemoveManualSlotCommand.
type RemoveManualSlotHandler struct {
	planRepo planningDomain.PlanRepository
	uow      sharedApplication.UnitOfWork
}

// NewRemoveManualSlotHandler creates a new handler.
func NewRemoveManualSlotHandler(
	planRepo planningDomain.PlanRepository,
	uow sharedApplication.UnitOfWork,
) *RemoveManualSlotHandler {
	return &RemoveManualSlotHandler{planRepo: planRepo, uow: uow}
}

// Handle executes the command.
func (h *RemoveManualSlotHandler) Handle(ctx context.Context, cmd RemoveManualSlotCommand) error {
	plan, err := h.planRepo.FindByUserAndDay(ctx, cmd.UserID, cmd.Day)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrPlanNotFound
	}

	if err := plan.RemoveSlot(cmd.SlotID); err != nil {
		return err
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(ctx context.Context) error {
		return h.planRepo.Save(ctx, plan)
	})
}
