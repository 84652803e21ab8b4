package persistence

import (
	"context"
	"encoding/json"
	"time"

	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	sharedPersistence "github.com/dayflow/dayflow/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertDecisionSQL = `
	INSERT INTO ai_decisions (id, user_id, task_id, chosen, alternatives, confidence, explanation, decided_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

const selectDecisionsByTaskSQL = `
	SELECT id, user_id, task_id, chosen, alternatives, confidence, explanation, decided_at
	FROM ai_decisions
	WHERE task_id = $1
	ORDER BY decided_at DESC
`

// PostgresDecisionRepository implements planning.DecisionRepository using
// PostgreSQL. Decisions are append-only audit records.
type PostgresDecisionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDecisionRepository creates a new PostgreSQL decision repository.
func NewPostgresDecisionRepository(pool *pgxpool.Pool) *PostgresDecisionRepository {
	return &PostgresDecisionRepository{pool: pool}
}

// Save appends a decision record.
func (r *PostgresDecisionRepository) Save(ctx context.Context, decision planningDomain.AIDecision) error {
	execer := sharedPersistence.Executor(ctx, r.pool)

	chosen, err := json.Marshal(decision.Chosen)
	if err != nil {
		return err
	}
	alternatives, err := json.Marshal(decision.Alternatives)
	if err != nil {
		return err
	}

	_, err = execer.Exec(ctx, insertDecisionSQL,
		decision.ID, decision.UserID, decision.TaskID,
		chosen, alternatives, decision.Confidence,
		decision.Explanation, decision.DecidedAt)
	return err
}

// FindByTaskID returns all decisions recorded for a task, newest first.
func (r *PostgresDecisionRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]planningDomain.AIDecision, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx, selectDecisionsByTaskSQL, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []planningDomain.AIDecision
	for rows.Next() {
		var (
			decision         planningDomain.AIDecision
			chosenRaw        []byte
			alternativesRaw  []byte
			decidedAt        time.Time
			id, userID, task uuid.UUID
		)
		err := rows.Scan(&id, &userID, &task, &chosenRaw, &alternativesRaw,
			&decision.Confidence, &decision.Explanation, &decidedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(chosenRaw, &decision.Chosen); err != nil {
			return nil, err
		}
		if len(alternativesRaw) > 0 {
			if err := json.Unmarshal(alternativesRaw, &decision.Alternatives); err != nil {
				return nil, err
			}
		}
		decision.ID = id
		decision.UserID = userID
		decision.TaskID = task
		decision.DecidedAt = decidedAt
		decisions = append(decisions, decision)
	}
	return decisions, rows.Err()
}
