package commands

import (
	"context"
	"time"

	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/dayflow/dayflow/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

// UpdateTaskCommand edits task fields. Nil pointers leave the field as
// is; ClearDeadline removes an existing deadline.
type UpdateTaskCommand struct {
	TaskID          uuid.UUID
	Title           *string
	Description     *string
	Priority        *int
	DurationMinutes *int
	Energy          *string
	Deadline        *time.Time
	ClearDeadline   bool
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo taskDomain.Repository
	uow      sharedApplication.UnitOfWork
}

// NewUpdateTaskHandler creates a new handler.
func NewUpdateTaskHandler(taskRepo taskDomain.Repository, uow sharedApplication.UnitOfWork) *UpdateTaskHandler {
	return &UpdateTaskHandler{taskRepo: taskRepo, uow: uow}
}

// Handle executes the command.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) error {
	task, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return err
	}
	if task == nil {
		return taskDomain.ErrNotFound
	}

	if cmd.Title != nil {
		if err := task.SetTitle(*cmd.Title); err != nil {
			return err
		}
	}
	if cmd.Description != nil {
		task.SetDescription(*cmd.Description)
	}
	if cmd.Priority != nil {
		priority, err := value_objects.NewPriority(*cmd.Priority)
		if err != nil {
			return err
		}
		if err := task.SetPriority(priority); err != nil {
			return err
		}
	}
	if cmd.DurationMinutes != nil {
		duration, err := value_objects.NewDuration(*cmd.DurationMinutes)
		if err != nil {
			return err
		}
		if err := task.SetDuration(duration); err != nil {
			return err
		}
	}
	if cmd.Energy != nil {
		energy, err := value_objects.ParseEnergyRequirement(*cmd.Energy)
		if err != nil {
			return err
		}
		if err := task.SetEnergy(energy); err != nil {
			return err
		}
	}
	if cmd.ClearDeadline {
		task.SetDeadline(nil)
	} else if cmd.Deadline != nil {
		task.SetDeadline(cmd.Deadline)
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(ctx context.Context) error {
		return h.taskRepo.Save(ctx, task)
	})
}
