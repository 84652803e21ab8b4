package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	sharedPersistence "github.com/dayflow/dayflow/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertProfileSQL = `
	INSERT INTO energy_profiles (id, user_id, hourly, weekday_overrides, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id) DO UPDATE SET
		hourly = EXCLUDED.hourly,
		weekday_overrides = EXCLUDED.weekday_overrides,
		updated_at = EXCLUDED.updated_at
`

const selectProfileSQL = `
	SELECT id, user_id, hourly, weekday_overrides, created_at, updated_at
	FROM energy_profiles
	WHERE user_id = $1
`

// PostgresEnergyProfileRepository implements planning.EnergyProfileRepository
// using PostgreSQL. Curves are stored as JSONB.
type PostgresEnergyProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEnergyProfileRepository creates a new PostgreSQL profile repository.
func NewPostgresEnergyProfileRepository(pool *pgxpool.Pool) *PostgresEnergyProfileRepository {
	return &PostgresEnergyProfileRepository{pool: pool}
}

// Save persists the profile, replacing any stored curves for the user.
func (r *PostgresEnergyProfileRepository) Save(ctx context.Context, profile *planningDomain.EnergyProfile) error {
	execer := sharedPersistence.Executor(ctx, r.pool)

	hourly, err := json.Marshal(profile.Hourly())
	if err != nil {
		return err
	}
	overrides, err := json.Marshal(encodeOverrides(profile.WeekdayOverrides()))
	if err != nil {
		return err
	}

	_, err = execer.Exec(ctx, upsertProfileSQL,
		profile.ID(), profile.UserID(), hourly, overrides,
		profile.CreatedAt(), profile.UpdatedAt())
	return err
}

// FindByUserID loads the user's profile, or nil when none is stored.
func (r *PostgresEnergyProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*planningDomain.EnergyProfile, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)

	var (
		id                   uuid.UUID
		owner                uuid.UUID
		hourlyRaw            []byte
		overridesRaw         []byte
		createdAt, updatedAt time.Time
	)
	err := execer.QueryRow(ctx, selectProfileSQL, userID).
		Scan(&id, &owner, &hourlyRaw, &overridesRaw, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var hourly [24]float64
	if err := json.Unmarshal(hourlyRaw, &hourly); err != nil {
		return nil, err
	}
	overrides, err := decodeOverrides(overridesRaw)
	if err != nil {
		return nil, err
	}
	return planningDomain.RehydrateEnergyProfile(id, owner, hourly, overrides, createdAt, updatedAt), nil
}

// JSON object keys must be strings, so weekdays are stored by their
// integer value (time.Sunday = 0).
func encodeOverrides(overrides map[time.Weekday][24]float64) map[string][24]float64 {
	out := make(map[string][24]float64, len(overrides))
	for day, curve := range overrides {
		out[strconv.Itoa(int(day))] = curve
	}
	return out
}

func decodeOverrides(raw []byte) (map[time.Weekday][24]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var encoded map[string][24]float64
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, err
	}
	out := make(map[time.Weekday][24]float64, len(encoded))
	for key, curve := range encoded {
		day, err := strconv.Atoi(key)
		if err != nil {
			return nil, err
		}
		out[time.Weekday(day)] = curve
	}
	return out, nil
}
