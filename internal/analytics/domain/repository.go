package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScoreRepository persists daily score records.
type ScoreRepository interface {
	Save(ctx context.Context, score DailyScore) error
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*DailyScore, error)
	FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]DailyScore, error)
}

// ScoreCache holds finalized daily scores so repeated trend queries do
// not hit the durable store. Only finalized scores may be cached.
type ScoreCache interface {
	Get(ctx context.Context, userID uuid.UUID, day time.Time) (*DailyScore, error)
	Set(ctx context.Context, score DailyScore) error
	Invalidate(ctx context.Context, userID uuid.UUID, day time.Time) error
}
