package persistence

import (
	"context"
	"errors"
	"time"

	analyticsDomain "github.com/dayflow/dayflow/internal/analytics/domain"
	sharedPersistence "github.com/dayflow/dayflow/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertScoreSQL = `
	INSERT INTO daily_scores (
		id, user_id, day, value, completion_ratio, postpone_penalty,
		energy_utilization, finalized, computed_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (user_id, day) DO UPDATE SET
		value = EXCLUDED.value,
		completion_ratio = EXCLUDED.completion_ratio,
		postpone_penalty = EXCLUDED.postpone_penalty,
		energy_utilization = EXCLUDED.energy_utilization,
		finalized = EXCLUDED.finalized,
		computed_at = EXCLUDED.computed_at
`

const selectScoreColumns = `
	SELECT id, user_id, day, value, completion_ratio, postpone_penalty,
	       energy_utilization, finalized, computed_at
	FROM daily_scores
`

// PostgresScoreRepository implements analytics.ScoreRepository using
// PostgreSQL. Recomputing a live day overwrites the previous row.
type PostgresScoreRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresScoreRepository creates a new PostgreSQL score repository.
func NewPostgresScoreRepository(pool *pgxpool.Pool) *PostgresScoreRepository {
	return &PostgresScoreRepository{pool: pool}
}

// Save upserts the score for the user's day.
func (r *PostgresScoreRepository) Save(ctx context.Context, score analyticsDomain.DailyScore) error {
	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, upsertScoreSQL,
		score.ID, score.UserID, score.Day, score.Value,
		score.CompletionRatio, score.PostponePenalty,
		score.EnergyUtilization, score.Finalized, score.ComputedAt)
	return err
}

// FindByUserAndDay loads a single day's score, or nil.
func (r *PostgresScoreRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*analyticsDomain.DailyScore, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	normalized := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	row := execer.QueryRow(ctx, selectScoreColumns+` WHERE user_id = $1 AND day = $2`, userID, normalized)
	score, err := scanScore(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// FindByUserInRange loads scores for days in [from, to), oldest first.
func (r *PostgresScoreRepository) FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]analyticsDomain.DailyScore, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx,
		selectScoreColumns+` WHERE user_id = $1 AND day >= $2 AND day < $3 ORDER BY day`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []analyticsDomain.DailyScore
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func scanScore(row pgx.Row) (analyticsDomain.DailyScore, error) {
	var s analyticsDomain.DailyScore
	err := row.Scan(&s.ID, &s.UserID, &s.Day, &s.Value,
		&s.CompletionRatio, &s.PostponePenalty,
		&s.EnergyUtilization, &s.Finalized, &s.ComputedAt)
	return s, err
}
