package queries

import (
	"context"
	"time"

	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is the read model for a task.
type TaskDTO struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	Priority        int        `json:"priority"`
	DurationMinutes int        `json:"duration_minutes"`
	Energy          string     `json:"energy"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	PostponeCount   int        `json:"postpone_count"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

func toTaskDTO(t *taskDomain.Task) TaskDTO {
	return TaskDTO{
		ID:              t.ID(),
		Title:           t.Title(),
		Description:     t.Description(),
		Status:          t.Status().String(),
		Priority:        int(t.Priority()),
		DurationMinutes: t.Duration().Minutes(),
		Energy:          t.Energy().String(),
		Deadline:        t.Deadline(),
		PostponeCount:   t.PostponeCount(),
		CompletedAt:     t.CompletedAt(),
	}
}

// GetTaskQuery fetches one task.
type GetTaskQuery struct {
	TaskID uuid.UUID
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	taskRepo taskDomain.Repository
}

// NewGetTaskHandler creates a new handler.
func NewGetTaskHandler(taskRepo taskDomain.Repository) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo}
}

// Handle executes the query.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (*TaskDTO, error) {
	task, err := h.taskRepo.FindByID(ctx, query.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, taskDomain.ErrNotFound
	}
	dto := toTaskDTO(task)
	return &dto, nil
}
