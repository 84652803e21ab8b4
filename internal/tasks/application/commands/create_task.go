package commands

import (
	"context"
	"time"

	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	"github.com/dayflow/dayflow/internal/shared/infrastructure/outbox"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/dayflow/dayflow/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

// CreateTaskCommand creates a new pending task.
type CreateTaskCommand struct {
	UserID          uuid.UUID
	Title           string
	Description     string
	Priority        int
	DurationMinutes int
	Energy          string
	Deadline        *time.Time
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   taskDomain.Repository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateTaskHandler creates a new handler.
func NewCreateTaskHandler(
	taskRepo taskDomain.Repository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *CreateTaskHandler {
	return &CreateTaskHandler{taskRepo: taskRepo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the command and returns the new task's ID.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (uuid.UUID, error) {
	priority, err := value_objects.NewPriority(cmd.Priority)
	if err != nil {
		return uuid.Nil, err
	}
	duration, err := value_objects.NewDuration(cmd.DurationMinutes)
	if err != nil {
		return uuid.Nil, err
	}
	energy, err := value_objects.ParseEnergyRequirement(cmd.Energy)
	if err != nil {
		return uuid.Nil, err
	}

	task, err := taskDomain.NewTask(cmd.UserID, cmd.Title, priority, duration, energy, cmd.Deadline)
	if err != nil {
		return uuid.Nil, err
	}
	if cmd.Description != "" {
		task.SetDescription(cmd.Description)
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
		return uuid.Nil, err
	}

	task.ClearDomainEvents()
	return task.ID(), nil
}
