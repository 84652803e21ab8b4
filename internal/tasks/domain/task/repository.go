package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("task not found")

// Repository defines the interface for task persistence.
type Repository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Task, error)
	FindPlannable(ctx context.Context, userID uuid.UUID) ([]*Task, error)
	FindCompletedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
