package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyProfile_LevelAt(t *testing.T) {
	var hourly [24]float64
	for i := range hourly {
		hourly[i] = 0.5
	}
	hourly[9] = 0.9

	profile, err := NewEnergyProfile(uuid.New(), hourly)
	require.NoError(t, err)

	morning := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 2, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.9, profile.LevelAt(morning))
	assert.Equal(t, 0.5, profile.LevelAt(evening))
}

func TestEnergyProfile_WeekdayOverride(t *testing.T) {
	var base, monday [24]float64
	for i := range base {
		base[i] = 0.5
		monday[i] = 0.2
	}

	profile, err := NewEnergyProfile(uuid.New(), base)
	require.NoError(t, err)
	require.NoError(t, profile.SetWeekdayOverride(time.Monday, monday))

	mon := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) // a Monday
	tue := mon.Add(24 * time.Hour)
	assert.Equal(t, 0.2, profile.LevelAt(mon))
	assert.Equal(t, 0.5, profile.LevelAt(tue))

	profile.ClearWeekdayOverride(time.Monday)
	assert.Equal(t, 0.5, profile.LevelAt(mon))
}

func TestEnergyProfile_RejectsOutOfRangeLevels(t *testing.T) {
	var hourly [24]float64
	hourly[3] = 1.2

	_, err := NewEnergyProfile(uuid.New(), hourly)
	assert.ErrorIs(t, err, ErrInvalidEnergyLevel)

	hourly[3] = -0.1
	_, err = NewEnergyProfile(uuid.New(), hourly)
	assert.ErrorIs(t, err, ErrInvalidEnergyLevel)
}

func TestDefaultEnergyProfile(t *testing.T) {
	profile := DefaultEnergyProfile(uuid.New())
	for hour := 0; hour < 24; hour++ {
		at := time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
		assert.Equal(t, DefaultEnergyLevel, profile.LevelAt(at))
	}
}
