package services

import (
	"testing"
	"time"

	analytics "github.com/dayflow/dayflow/internal/analytics/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayN(n int) time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * 24 * time.Hour)
}

func historyWithValues(userID uuid.UUID, values []float64, utilization float64) []analytics.DailyScore {
	out := make([]analytics.DailyScore, len(values))
	for i, v := range values {
		out[i] = analytics.NewDailyScore(userID, dayN(i), v, v/100, 0, utilization, true, dayN(i).Add(24*time.Hour))
	}
	return out
}

func TestComputeDaily_WeightsCompletionByScore(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	userID := uuid.New()
	now := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)

	outcomes := []TaskOutcome{
		{TaskID: uuid.New(), Score: 6, Completed: true},
		{TaskID: uuid.New(), Score: 2, Completed: false},
	}

	score := calc.ComputeDaily(userID, dayN(1), outcomes, 0, 4*time.Hour, 10*time.Hour, false, now)
	assert.InDelta(t, 75.0, score.Value, 1e-9, "6 of 8 score points completed")
	assert.InDelta(t, 0.75, score.CompletionRatio, 1e-9)
	assert.InDelta(t, 0.4, score.EnergyUtilization, 1e-9)
}

func TestComputeDaily_EmptyDayScoresExactlyHundred(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	now := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)

	score := calc.ComputeDaily(uuid.New(), dayN(1), nil, 2, 0, 10*time.Hour, true, now)
	assert.Equal(t, 100.0, score.Value, "nothing scheduled is a vacuous success, penalty does not apply")
}

func TestComputeDaily_PostponePenaltyAndBounds(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	now := time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	outcomes := []TaskOutcome{{TaskID: uuid.New(), Score: 5, Completed: true}}

	penalized := calc.ComputeDaily(uuid.New(), dayN(1), outcomes, 3, time.Hour, 10*time.Hour, false, now)
	assert.InDelta(t, 85.0, penalized.Value, 1e-9, "three postpones cost fifteen points")

	floored := calc.ComputeDaily(uuid.New(), dayN(1),
		[]TaskOutcome{{TaskID: uuid.New(), Score: 5, Completed: false}}, 25, time.Hour, 10*time.Hour, false, now)
	assert.Equal(t, 0.0, floored.Value, "score never leaves [0,100]")
}

func TestComputeWeekly_WeighsRecentDaysMore(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	userID := uuid.New()

	// older days at 100, the most recent at 0
	rising := historyWithValues(userID, []float64{0, 100}, 0.5)
	falling := historyWithValues(userID, []float64{100, 0}, 0.5)

	assert.Greater(t, calc.ComputeWeekly(rising), calc.ComputeWeekly(falling),
		"a recent bad day drags the weekly score harder than an old one")

	flat := historyWithValues(userID, []float64{80, 80, 80, 80, 80, 80, 80, 80, 80}, 0.5)
	assert.InDelta(t, 80.0, calc.ComputeWeekly(flat), 1e-9)
}

func TestComputeTrend_SlopeSign(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	userID := uuid.New()
	now := dayN(40)

	improving := calc.ComputeTrend(userID, historyWithValues(userID, []float64{50, 60, 70, 80, 90}, 0.5), now)
	assert.InDelta(t, 10.0, improving.Slope, 1e-9)
	assert.Equal(t, analytics.RiskNone, improving.Risk)

	declining := calc.ComputeTrend(userID, historyWithValues(userID, []float64{90, 80, 70, 60, 50}, 0.5), now)
	assert.InDelta(t, -10.0, declining.Slope, 1e-9)
}

func TestComputeTrend_BurnoutClassification(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	userID := uuid.New()
	now := dayN(40)

	decline := []float64{90, 85, 80, 75, 70, 65}

	tests := []struct {
		name        string
		utilization float64
		want        analytics.BurnoutRisk
	}{
		{"steep decline at full tilt", 0.9, analytics.RiskHigh},
		{"steep decline at moderate load", 0.75, analytics.RiskElevated},
		{"steep decline with slack", 0.3, analytics.RiskNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := calc.ComputeTrend(userID, historyWithValues(userID, decline, tt.utilization), now)
			assert.Equal(t, tt.want, report.Risk)
		})
	}
}

func TestComputeTrend_NoStreakNoRisk(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	userID := uuid.New()
	now := dayN(40)

	// declining overall but the last day rebounds, breaking the streak
	values := []float64{90, 80, 70, 60, 65}
	report := calc.ComputeTrend(userID, historyWithValues(userID, values, 0.95), now)
	assert.Equal(t, analytics.RiskNone, report.Risk)
}

func TestComputeTrend_ConfidenceGrowsWithCoverage(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	userID := uuid.New()
	now := dayN(40)

	sparse := calc.ComputeTrend(userID, historyWithValues(userID, []float64{80, 70, 60}, 0.5), now)
	assert.InDelta(t, 0.1, sparse.Confidence, 1e-9, "three of thirty window days")

	var full []float64
	for i := 0; i < 30; i++ {
		full = append(full, 80)
	}
	dense := calc.ComputeTrend(userID, historyWithValues(userID, full, 0.5), now)
	assert.Equal(t, 1.0, dense.Confidence)
}

func TestComputeTrend_WindowCapped(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	userID := uuid.New()
	now := dayN(60)

	var values []float64
	for i := 0; i < 45; i++ {
		values = append(values, 70)
	}
	report := calc.ComputeTrend(userID, historyWithValues(userID, values, 0.5), now)
	require.Equal(t, 30, report.WindowDays)
}

func TestComputeDaily_ScoreAlwaysInRange(t *testing.T) {
	calc := NewScoreCalculator(DefaultScoreConfig())
	now := dayN(2)

	for postpones := 0; postpones <= 30; postpones += 5 {
		for _, completed := range []bool{true, false} {
			score := calc.ComputeDaily(uuid.New(), dayN(1),
				[]TaskOutcome{{TaskID: uuid.New(), Score: 7, Completed: completed}},
				postpones, 2*time.Hour, 8*time.Hour, false, now)
			assert.GreaterOrEqual(t, score.Value, 0.0)
			assert.LessOrEqual(t, score.Value, 100.0)
		}
	}
}
