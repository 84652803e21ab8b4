package services

import (
	"time"

	"github.com/dayflow/dayflow/internal/tasks/domain/value_objects"
)

// ScoringConfig holds the weights of the composite task score. The
// defaults favor urgency strongly enough that a near-deadline low
// priority task outranks a deadline-free critical one.
type ScoringConfig struct {
	PriorityWeight float64
	UrgencyWeight  float64
	PostponeWeight float64
}

// DefaultScoringConfig returns the production weights.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		PriorityWeight: 1.0,
		UrgencyWeight:  4.0,
		PostponeWeight: 0.5,
	}
}

// ScoringModel computes task ranking scores and energy fit. All methods
// are pure; callers pass the reference time explicitly so runs are
// reproducible.
type ScoringModel struct {
	cfg ScoringConfig
}

// NewScoringModel creates a model with the given weights.
func NewScoringModel(cfg ScoringConfig) *ScoringModel {
	return &ScoringModel{cfg: cfg}
}

// Urgency maps a deadline to [0, 1]. A task without a deadline is never
// urgent; an overdue task is maximally urgent. In between, urgency
// decays with the time remaining and saturates inside the final day.
func (m *ScoringModel) Urgency(deadline *time.Time, now time.Time) float64 {
	if deadline == nil {
		return 0
	}
	hoursLeft := deadline.Sub(now).Hours()
	if hoursLeft <= 0 {
		return 1
	}
	return clamp01(24 / hoursLeft)
}

// CompositeScore combines priority, urgency, and postponement history
// into a single rank value. Strictly increasing in priority and in
// postpone count, holding the rest fixed.
func (m *ScoringModel) CompositeScore(
	priority value_objects.Priority,
	deadline *time.Time,
	postponeCount int,
	now time.Time,
) float64 {
	return m.cfg.PriorityWeight*priority.Weight() +
		m.cfg.UrgencyWeight*m.Urgency(deadline, now) +
		m.cfg.PostponeWeight*float64(postponeCount)
}

// EnergyMatch scores how well an energy level suits a task's demand.
// Meeting the threshold is a perfect fit; below it the fit degrades
// proportionally.
func (m *ScoringModel) EnergyMatch(level float64, req value_objects.EnergyRequirement) float64 {
	threshold := req.Threshold()
	if level >= threshold {
		return 1
	}
	if threshold == 0 {
		return 1
	}
	return clamp01(level / threshold)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
