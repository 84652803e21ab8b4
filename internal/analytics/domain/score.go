package domain

import (
	"time"

	"github.com/google/uuid"
)

// BurnoutRisk is a qualitative forecast derived from sustained score
// decline combined with high energy utilization.
type BurnoutRisk string

const (
	RiskNone     BurnoutRisk = "none"
	RiskElevated BurnoutRisk = "elevated"
	RiskHigh     BurnoutRisk = "high"
)

func (r BurnoutRisk) String() string { return string(r) }

// DailyScore is the plan-quality measure for one user and one day,
// always in [0, 100]. Finalized scores (computed after the day has
// fully elapsed) are immutable and safe to cache.
type DailyScore struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Day               time.Time
	Value             float64
	CompletionRatio   float64
	PostponePenalty   float64
	EnergyUtilization float64
	Finalized         bool
	ComputedAt        time.Time
}

// NewDailyScore creates a score record for a day.
func NewDailyScore(
	userID uuid.UUID,
	day time.Time,
	value, completionRatio, postponePenalty, utilization float64,
	finalized bool,
	computedAt time.Time,
) DailyScore {
	return DailyScore{
		ID:                uuid.New(),
		UserID:            userID,
		Day:               day,
		Value:             value,
		CompletionRatio:   completionRatio,
		PostponePenalty:   postponePenalty,
		EnergyUtilization: utilization,
		Finalized:         finalized,
		ComputedAt:        computedAt,
	}
}

// TrendReport summarizes score movement over a trailing window.
type TrendReport struct {
	UserID      uuid.UUID
	WindowDays  int
	Slope       float64 // points per day, signed
	WeeklyScore float64
	Risk        BurnoutRisk
	Confidence  float64 // [0,1], grows with window coverage
	ComputedAt  time.Time
}
