package queries

import (
	"context"
	"time"

	analyticsDomain "github.com/dayflow/dayflow/internal/analytics/domain"
	"github.com/dayflow/dayflow/pkg/observability"
	"github.com/google/uuid"
)

// GetScoreHistoryQuery fetches daily scores over a date range.
type GetScoreHistoryQuery struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
}

// GetScoreHistoryHandler handles the GetScoreHistoryQuery.
type GetScoreHistoryHandler struct {
	scoreRepo analyticsDomain.ScoreRepository
}

// NewGetScoreHistoryHandler creates a new handler.
func NewGetScoreHistoryHandler(scoreRepo analyticsDomain.ScoreRepository) *GetScoreHistoryHandler {
	return &GetScoreHistoryHandler{scoreRepo: scoreRepo}
}

// Handle executes the query.
func (h *GetScoreHistoryHandler) Handle(ctx context.Context, query GetScoreHistoryQuery) ([]analyticsDomain.DailyScore, error) {
	return h.scoreRepo.FindByUserInRange(ctx, query.UserID, query.From, query.To)
}

// GetDailyScoreQuery fetches the score for one day, preferring the
// cache for finalized days.
type GetDailyScoreQuery struct {
	UserID uuid.UUID
	Day    time.Time
}

// GetDailyScoreHandler handles the GetDailyScoreQuery.
type GetDailyScoreHandler struct {
	scoreRepo  analyticsDomain.ScoreRepository
	scoreCache analyticsDomain.ScoreCache
	metrics    observability.Metrics
}

// NewGetDailyScoreHandler creates a new handler.
func NewGetDailyScoreHandler(
	scoreRepo analyticsDomain.ScoreRepository,
	scoreCache analyticsDomain.ScoreCache,
	metrics observability.Metrics,
) *GetDailyScoreHandler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &GetDailyScoreHandler{scoreRepo: scoreRepo, scoreCache: scoreCache, metrics: metrics}
}

// Handle executes the query. A nil result with nil error means no score
// has been computed for that day yet.
func (h *GetDailyScoreHandler) Handle(ctx context.Context, query GetDailyScoreQuery) (*analyticsDomain.DailyScore, error) {
	day := time.Date(query.Day.Year(), query.Day.Month(), query.Day.Day(), 0, 0, 0, 0, time.UTC)

	if h.scoreCache != nil {
		cached, err := h.scoreCache.Get(ctx, query.UserID, day)
		if err == nil && cached != nil {
			h.metrics.Counter(observability.MetricScoreCacheHits, 1)
			return cached, nil
		}
	}

	score, err := h.scoreRepo.FindByUserAndDay(ctx, query.UserID, day)
	if err != nil {
		return nil, err
	}
	if score != nil && score.Finalized && h.scoreCache != nil {
		_ = h.scoreCache.Set(ctx, *score)
	}
	return score, nil
}
