package domain

import (
	"errors"
	"time"

	"github.com/dayflow/dayflow/internal/shared/domain"
	"github.com/google/uuid"
)

var ErrInvalidEnergyLevel = errors.New("energy level must be between 0 and 1")

// DefaultEnergyLevel is assumed for users without a stored profile.
const DefaultEnergyLevel = 0.6

// EnergyProfile captures a user's expected energy level for each hour of
// the day, with optional per-weekday overrides. Levels are in [0, 1].
type EnergyProfile struct {
	domain.BaseEntity
	userID   uuid.UUID
	hourly   [24]float64
	weekdays map[time.Weekday][24]float64
}

// NewEnergyProfile creates a profile from a base hourly curve.
func NewEnergyProfile(userID uuid.UUID, hourly [24]float64) (*EnergyProfile, error) {
	for _, lvl := range hourly {
		if lvl < 0 || lvl > 1 {
			return nil, ErrInvalidEnergyLevel
		}
	}
	return &EnergyProfile{
		BaseEntity: domain.NewBaseEntity(),
		userID:     userID,
		hourly:     hourly,
		weekdays:   make(map[time.Weekday][24]float64),
	}, nil
}

// DefaultEnergyProfile returns a flat profile at the default level.
func DefaultEnergyProfile(userID uuid.UUID) *EnergyProfile {
	var hourly [24]float64
	for i := range hourly {
		hourly[i] = DefaultEnergyLevel
	}
	p, _ := NewEnergyProfile(userID, hourly)
	return p
}

func (p *EnergyProfile) UserID() uuid.UUID  { return p.userID }
func (p *EnergyProfile) Hourly() [24]float64 { return p.hourly }

// WeekdayOverrides returns a copy of the per-weekday curves.
func (p *EnergyProfile) WeekdayOverrides() map[time.Weekday][24]float64 {
	out := make(map[time.Weekday][24]float64, len(p.weekdays))
	for d, h := range p.weekdays {
		out[d] = h
	}
	return out
}

// SetHourly replaces the base curve.
func (p *EnergyProfile) SetHourly(hourly [24]float64) error {
	for _, lvl := range hourly {
		if lvl < 0 || lvl > 1 {
			return ErrInvalidEnergyLevel
		}
	}
	p.hourly = hourly
	p.Touch()
	return nil
}

// SetWeekdayOverride installs a curve that takes precedence over the
// base one on the given weekday.
func (p *EnergyProfile) SetWeekdayOverride(day time.Weekday, hourly [24]float64) error {
	for _, lvl := range hourly {
		if lvl < 0 || lvl > 1 {
			return ErrInvalidEnergyLevel
		}
	}
	p.weekdays[day] = hourly
	p.Touch()
	return nil
}

// ClearWeekdayOverride removes a weekday-specific curve.
func (p *EnergyProfile) ClearWeekdayOverride(day time.Weekday) {
	delete(p.weekdays, day)
	p.Touch()
}

// LevelAt returns the expected energy level for an instant, preferring
// the weekday override when one exists.
func (p *EnergyProfile) LevelAt(t time.Time) float64 {
	if curve, ok := p.weekdays[t.Weekday()]; ok {
		return curve[t.Hour()]
	}
	return p.hourly[t.Hour()]
}

// RehydrateEnergyProfile recreates a profile from persisted state.
func RehydrateEnergyProfile(
	id uuid.UUID,
	userID uuid.UUID,
	hourly [24]float64,
	weekdays map[time.Weekday][24]float64,
	createdAt, updatedAt time.Time,
) *EnergyProfile {
	if weekdays == nil {
		weekdays = make(map[time.Weekday][24]float64)
	}
	return &EnergyProfile{
		BaseEntity: domain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID:     userID,
		hourly:     hourly,
		weekdays:   weekdays,
	}
}
