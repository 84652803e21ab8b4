package persistence

import (
	"context"
	"errors"
	"time"

	sharedPersistence "github.com/dayflow/dayflow/internal/shared/infrastructure/persistence"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/dayflow/dayflow/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertTaskSQL = `
	INSERT INTO tasks (
		id, user_id, title, description, status, priority, duration_minutes,
		energy, deadline, postpone_count, completed_at, version, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		status = EXCLUDED.status,
		priority = EXCLUDED.priority,
		duration_minutes = EXCLUDED.duration_minutes,
		energy = EXCLUDED.energy,
		deadline = EXCLUDED.deadline,
		postpone_count = EXCLUDED.postpone_count,
		completed_at = EXCLUDED.completed_at,
		version = tasks.version + 1,
		updated_at = EXCLUDED.updated_at
`

const selectTaskSQL = `
	SELECT id, user_id, title, description, status, priority, duration_minutes,
	       energy, deadline, postpone_count, completed_at, version, created_at, updated_at
	FROM tasks
`

// PostgresTaskRepository implements task.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

// Save inserts or updates a task.
func (r *PostgresTaskRepository) Save(ctx context.Context, t *taskDomain.Task) error {
	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, upsertTaskSQL,
		t.ID(),
		t.UserID(),
		t.Title(),
		t.Description(),
		t.Status().String(),
		int(t.Priority()),
		t.Duration().Minutes(),
		t.Energy().String(),
		t.Deadline(),
		t.PostponeCount(),
		t.CompletedAt(),
		t.Version(),
		t.CreatedAt(),
		t.UpdatedAt(),
	)
	return err
}

// FindByID returns the task or nil when it does not exist.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*taskDomain.Task, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	row := execer.QueryRow(ctx, selectTaskSQL+` WHERE id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

// FindByUserID returns all tasks owned by a user.
func (r *PostgresTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*taskDomain.Task, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx, selectTaskSQL+` WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// FindPlannable returns the user's pending and scheduled tasks.
func (r *PostgresTaskRepository) FindPlannable(ctx context.Context, userID uuid.UUID) ([]*taskDomain.Task, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx,
		selectTaskSQL+` WHERE user_id = $1 AND status IN ('pending', 'scheduled') ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// FindCompletedInRange returns tasks completed within [from, to).
func (r *PostgresTaskRepository) FindCompletedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*taskDomain.Task, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx,
		selectTaskSQL+` WHERE user_id = $1 AND status = 'done' AND completed_at >= $2 AND completed_at < $3
		 ORDER BY completed_at`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// Delete removes a task.
func (r *PostgresTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func scanTask(row pgx.Row) (*taskDomain.Task, error) {
	var (
		id, userID      uuid.UUID
		title, desc     string
		status, energy  string
		priority        int
		durationMinutes int
		deadline        *time.Time
		postponeCount   int
		completedAt     *time.Time
		version         int
		createdAt       time.Time
		updatedAt       time.Time
	)
	err := row.Scan(&id, &userID, &title, &desc, &status, &priority, &durationMinutes,
		&energy, &deadline, &postponeCount, &completedAt, &version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	duration, err := value_objects.NewDuration(durationMinutes)
	if err != nil {
		return nil, err
	}
	return taskDomain.RehydrateTask(
		id, userID, title, desc,
		taskDomain.Status(status),
		value_objects.Priority(priority),
		duration,
		value_objects.EnergyRequirement(energy),
		deadline, postponeCount, completedAt,
		version, createdAt, updatedAt,
	), nil
}

func scanTasks(rows pgx.Rows) ([]*taskDomain.Task, error) {
	var tasks []*taskDomain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
