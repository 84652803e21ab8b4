package services

import (
	"testing"
	"time"

	"github.com/dayflow/dayflow/internal/tasks/domain/value_objects"
	"github.com/stretchr/testify/assert"
)

func TestCompositeScore_MonotonicInPriority(t *testing.T) {
	model := NewScoringModel(DefaultScoringConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	deadline := now.Add(48 * time.Hour)

	prev := -1.0
	for p := 1; p <= 5; p++ {
		priority, err := value_objects.NewPriority(p)
		assert.NoError(t, err)
		score := model.CompositeScore(priority, &deadline, 2, now)
		assert.Greater(t, score, prev, "priority %d should outrank priority %d", p, p-1)
		prev = score
	}
}

func TestCompositeScore_MonotonicInPostponeCount(t *testing.T) {
	model := NewScoringModel(DefaultScoringConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	prev := -1.0
	for n := 0; n < 5; n++ {
		score := model.CompositeScore(value_objects.PriorityMedium, nil, n, now)
		assert.Greater(t, score, prev)
		prev = score
	}
}

func TestCompositeScore_UrgencyGrowsAsDeadlineApproaches(t *testing.T) {
	model := NewScoringModel(DefaultScoringConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	far := now.Add(7 * 24 * time.Hour)
	near := now.Add(36 * time.Hour)
	imminent := now.Add(time.Hour)

	farScore := model.CompositeScore(value_objects.PriorityMedium, &far, 0, now)
	nearScore := model.CompositeScore(value_objects.PriorityMedium, &near, 0, now)
	imminentScore := model.CompositeScore(value_objects.PriorityMedium, &imminent, 0, now)

	assert.Greater(t, nearScore, farScore)
	assert.Greater(t, imminentScore, nearScore)
}

func TestUrgency_Bounds(t *testing.T) {
	model := NewScoringModel(DefaultScoringConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	assert.Zero(t, model.Urgency(nil, now))

	overdue := now.Add(-time.Hour)
	assert.Equal(t, 1.0, model.Urgency(&overdue, now), "overdue tasks saturate instead of diverging")

	within := now.Add(6 * time.Hour)
	assert.Equal(t, 1.0, model.Urgency(&within, now), "inside the final day urgency is maximal")

	distant := now.Add(240 * time.Hour)
	u := model.Urgency(&distant, now)
	assert.Greater(t, u, 0.0)
	assert.Less(t, u, 1.0)
}

func TestEnergyMatch(t *testing.T) {
	model := NewScoringModel(DefaultScoringConfig())

	tests := []struct {
		name  string
		level float64
		req   value_objects.EnergyRequirement
		want  float64
	}{
		{"level meets high threshold", 0.8, value_objects.EnergyHigh, 1.0},
		{"level exactly at threshold", 0.4, value_objects.EnergyMedium, 1.0},
		{"level below high threshold degrades", 0.35, value_objects.EnergyHigh, 0.5},
		{"zero level", 0.0, value_objects.EnergyLow, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, model.EnergyMatch(tt.level, tt.req), 1e-9)
		})
	}
}

func TestCompositeScore_Deterministic(t *testing.T) {
	model := NewScoringModel(DefaultScoringConfig())
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	deadline := now.Add(30 * time.Hour)

	first := model.CompositeScore(value_objects.PriorityHigh, &deadline, 1, now)
	second := model.CompositeScore(value_objects.PriorityHigh, &deadline, 1, now)
	assert.Equal(t, first, second)
}
