package commands

import (
	"context"

	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	"github.com/dayflow/dayflow/internal/shared/infrastructure/outbox"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// PostponeTaskCommand records an explicit postponement. This is the
// only path that increments a task's postpone count; the planner never
// postpones on its own.
type PostponeTaskCommand struct {
	UserID uuid.UUID
	TaskID uuid.UUID
}

// PostponeTaskHandler handles the PostponeTaskCommand.
type PostponeTaskHandler struct {
	taskRepo   taskDomain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewPostponeTaskHandler creates a new handler.
func NewPostponeTaskHandler(
	taskRepo taskDomain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *PostponeTaskHandler {
	return &PostponeTaskHandler{taskRepo: taskRepo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the command.
func (h *PostponeTaskHandler) Handle(ctx context.Context, cmd PostponeTaskCommand) error {
	task, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if task == nil {
		return taskDomain.ErrNotFound
	}

	if err := task.Postpone(); err != nil {
		return err
	}

	metadata := sharedApplication.NewEventMetadata(cmd.UserID)
	sharedApplication.ApplyEventMetadata(task.DomainEvents(), metadata)

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(ctx context.Context) error {
		if err := h.taskRepo.Save(ctx, task); err != nil {
			return err
		}
		for _, event := range task.DomainEvents() {
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
		return err
	}

	task.ClearDomainEvents()
	return nil
}
