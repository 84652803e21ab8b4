package commands

import (
	"context"

	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	"github.com/dayflow/dayflow/internal/shared/infrastructure/outbox"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// CompleteTaskCommand marks a task done.
type CompleteTaskCommand struct {
	UserID uuid.UUID
	TaskID uuid.UUID
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	taskRepo   taskDomain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCompleteTaskHandler creates a new handler.
func NewCompleteTaskHandler(
	taskRepo taskDomain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *CompleteTaskHandler {
	return &CompleteTaskHandler{taskRepo: taskRepo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the command.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
	task, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if task == nil {
		return taskDomain.ErrNotFound
	}

	if err := task.Complete(); err != nil {
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
