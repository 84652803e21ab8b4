package queries

import (
	"context"

	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// ListTasksQuery fetches a user's tasks, optionally narrowed to the
// plannable ones.
type ListTasksQuery struct {
	UserID        uuid.UUID
	PlannableOnly bool
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo taskDomain.Repository
}

// NewListTasksHandler creates a new handler.
func NewListTasksHandler(taskRepo taskDomain.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the query.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	var (
		tasks []*taskDomain.Task
		err   error
	)
	if query.PlannableOnly {
		tasks, err = h.taskRepo.FindPlannable(ctx, query.UserID)
	} else {
		tasks, err = h.taskRepo.FindByUserID(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, toTaskDTO(t))
	}
	return dtos, nil
}
