package persistence

import (
	"context"
	"errors"
	"time"

	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	sharedPersistence "github.com/dayflow/dayflow/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertPlanSQL = `
	INSERT INTO day_plans (id, user_id, day, version, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id, day) DO UPDATE SET
		version = day_plans.version + 1,
		updated_at = EXCLUDED.updated_at
`

const insertSlotSQL = `
	INSERT INTO scheduled_slots (
		id, plan_id, user_id, task_id, title, start_at, end_at,
		is_break, source, notification_sent, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

const selectSlotsSQL = `
	SELECT id, user_id, task_id, title, start_at, end_at,
	       is_break, source, notification_sent, created_at, updated_at
	FROM scheduled_slots
	WHERE plan_id = $1
	ORDER BY start_at
`

// PostgresPlanRepository implements planning.PlanRepository using
// PostgreSQL. Saving replaces the plan's slot rows wholesale inside the
// ambient transaction, so readers never see a half-replaced set.
type PostgresPlanRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPlanRepository creates a new PostgreSQL plan repository.
func NewPostgresPlanRepository(pool *pgxpool.Pool) *PostgresPlanRepository {
	return &PostgresPlanRepository{pool: pool}
}

// Save persists the plan and its full slot set atomically.
func (r *PostgresPlanRepository) Save(ctx context.Context, plan *planningDomain.DayPlan) error {
	execer := sharedPersistence.Executor(ctx, r.pool)

	_, err := execer.Exec(ctx, upsertPlanSQL,
		plan.ID(), plan.UserID(), plan.Day(), plan.Version(), plan.CreatedAt(), plan.UpdatedAt())
	if err != nil {
		return err
	}

	if _, err := execer.Exec(ctx, `DELETE FROM scheduled_slots WHERE plan_id = $1`, plan.ID()); err != nil {
		return err
	}
	for _, slot := range plan.Slots() {
		_, err := execer.Exec(ctx, insertSlotSQL,
			slot.ID(), plan.ID(), slot.UserID(), slot.TaskID(), slot.Title(),
			slot.StartAt(), slot.EndAt(), slot.IsBreak(), slot.Source().String(),
			slot.NotificationSent(), slot.CreatedAt(), slot.UpdatedAt())
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByUserAndDay loads the plan for one day, or nil.
func (r *PostgresPlanRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*planningDomain.DayPlan, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	normalized := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	row := execer.QueryRow(ctx,
		`SELECT id, user_id, day, version, created_at, updated_at FROM day_plans
		 WHERE user_id = $1 AND day = $2`,
		userID, normalized)
	header, err := scanPlanHeader(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	slots, err := r.loadSlots(ctx, execer, header.id)
	if err != nil {
		return nil, err
	}
	return planningDomain.RehydrateDayPlan(
		header.id, header.userID, header.day, slots, header.version, header.createdAt, header.updatedAt), nil
}

// FindByUserInRange loads plans for days in [from, to).
func (r *PostgresPlanRepository) FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*planningDomain.DayPlan, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx,
		`SELECT id, user_id, day, version, created_at, updated_at FROM day_plans
		 WHERE user_id = $1 AND day >= $2 AND day < $3 ORDER BY day`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	// Slot queries run after the plan cursor is drained so the same
	// transaction connection can serve them.
	var headers []planHeader
	for rows.Next() {
		header, err := scanPlanHeader(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		headers = append(headers, header)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	plans := make([]*planningDomain.DayPlan, 0, len(headers))
	for _, header := range headers {
		slots, err := r.loadSlots(ctx, execer, header.id)
		if err != nil {
			return nil, err
		}
		plans = append(plans, planningDomain.RehydrateDayPlan(
			header.id, header.userID, header.day, slots, header.version, header.createdAt, header.updatedAt))
	}
	return plans, nil
}

// Delete removes a plan and its slots.
func (r *PostgresPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	execer := sharedPersistence.Executor(ctx, r.pool)
	if _, err := execer.Exec(ctx, `DELETE FROM scheduled_slots WHERE plan_id = $1`, id); err != nil {
		return err
	}
	_, err := execer.Exec(ctx, `DELETE FROM day_plans WHERE id = $1`, id)
	return err
}

type planHeader struct {
	id, userID           uuid.UUID
	day                  time.Time
	version              int
	createdAt, updatedAt time.Time
}

func scanPlanHeader(row pgx.Row) (planHeader, error) {
	var h planHeader
	err := row.Scan(&h.id, &h.userID, &h.day, &h.version, &h.createdAt, &h.updatedAt)
	return h, err
}

func (r *PostgresPlanRepository) loadSlots(ctx context.Context, execer sharedPersistence.DBExecutor, planID uuid.UUID) ([]*planningDomain.ScheduledSlot, error) {
	rows, err := execer.Query(ctx, selectSlotsSQL, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*planningDomain.ScheduledSlot
	for rows.Next() {
		var (
			id, userID           uuid.UUID
			taskID               *uuid.UUID
			title, source        string
			startAt, endAt       time.Time
			isBreak, notified    bool
			createdAt, updatedAt time.Time
		)
		err := rows.Scan(&id, &userID, &taskID, &title, &startAt, &endAt,
			&isBreak, &source, &notified, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		slots = append(slots, planningDomain.RehydrateScheduledSlot(
			id, userID, taskID, title, startAt, endAt, isBreak,
			planningDomain.SlotSource(source), notified, createdAt, updatedAt))
	}
	return slots, rows.Err()
}
