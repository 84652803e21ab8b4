package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlanRepository persists day plans and their slots.
type PlanRepository interface {
	Save(ctx context.Context, plan *DayPlan) error
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*DayPlan, error)
	FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*DayPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EnergyProfileRepository persists per-user energy curves.
type EnergyProfileRepository interface {
	Save(ctx context.Context, profile *EnergyProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*EnergyProfile, error)
}

// DecisionRepository stores recommendation audit records.
type DecisionRepository interface {
	Save(ctx context.Context, decision AIDecision) error
	FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]AIDecision, error)
}
