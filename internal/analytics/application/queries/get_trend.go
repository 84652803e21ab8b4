package queries

import (
	"context"
	"time"

	"github.com/dayflow/dayflow/internal/analytics/application/services"
	analyticsDomain "github.com/dayflow/dayflow/internal/analytics/domain"
	"github.com/google/uuid"
)

// GetTrendQuery computes the score trend and burnout risk over the
// trailing window ending at Now.
type GetTrendQuery struct {
	UserID uuid.UUID
	Now    time.Time // zero means wall clock
}

// GetTrendHandler handles the GetTrendQuery.
type GetTrendHandler struct {
	scoreRepo  analyticsDomain.ScoreRepository
	calculator *services.ScoreCalculator
	windowDays int
}

// NewGetTrendHandler creates a new handler.
func NewGetTrendHandler(
	scoreRepo analyticsDomain.ScoreRepository,
	calculator *services.ScoreCalculator,
	windowDays int,
) *GetTrendHandler {
	return &GetTrendHandler{scoreRepo: scoreRepo, calculator: calculator, windowDays: windowDays}
}

// Handle executes the query.
func (h *GetTrendHandler) Handle(ctx context.Context, query GetTrendQuery) (*analyticsDomain.TrendReport, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	from := to.Add(-time.Duration(h.windowDays) * 24 * time.Hour)

	history, err := h.scoreRepo.FindByUserInRange(ctx, query.UserID, from, to)
	if err != nil {
		return nil, err
	}

	report := h.calculator.ComputeTrend(query.UserID, history, now)
	return &report, nil
}
