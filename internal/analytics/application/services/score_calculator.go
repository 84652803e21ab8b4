package services

import (
	"sort"
	"time"

	analytics "github.com/dayflow/dayflow/internal/analytics/domain"
	"github.com/google/uuid"
)

// ScoreConfig names every analytics threshold so none live inline.
type ScoreConfig struct {
	PostponePenaltyPoints float64 // per postpone increment observed that day
	WeeklyDecay           float64 // recency weight ratio for the weekly mean
	TrendWindowDays       int
	SlopeElevated         float64 // points per day of decline for elevated risk
	SlopeHigh             float64 // points per day of decline for high risk
	UtilizationElevated   float64
	UtilizationHigh       float64
	MinDeclineStreak      int // consecutive declining days before risk is flagged
}

// DefaultScoreConfig returns the production thresholds.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		PostponePenaltyPoints: 5.0,
		WeeklyDecay:           0.8,
		TrendWindowDays:       30,
		SlopeElevated:         0.5,
		SlopeHigh:             1.5,
		UtilizationElevated:   0.7,
		UtilizationHigh:       0.85,
		MinDeclineStreak:      3,
	}
}

// TaskOutcome is one scheduled task's contribution to a day: its
// composite score at scheduling time and whether it was completed.
type TaskOutcome struct {
	TaskID    uuid.UUID
	Score     float64
	Completed bool
}

// ScoreCalculator turns plan outcomes into daily and weekly scores,
// trend slope, and burnout risk. Pure; callers supply all history.
type ScoreCalculator struct {
	cfg ScoreConfig
}

// NewScoreCalculator creates a calculator with the given thresholds.
func NewScoreCalculator(cfg ScoreConfig) *ScoreCalculator {
	return &ScoreCalculator{cfg: cfg}
}

// ComputeDaily scores one user day. The ratio weighs completed tasks by
// their composite score so finishing the important work counts more
// than finishing the easy work. A day with nothing scheduled is a
// vacuous success and scores exactly 100.
func (c *ScoreCalculator) ComputeDaily(
	userID uuid.UUID,
	day time.Time,
	outcomes []TaskOutcome,
	postponeIncrements int,
	busyTime, availableTime time.Duration,
	finalized bool,
	now time.Time,
) analytics.DailyScore {
	utilization := 0.0
	if availableTime > 0 {
		utilization = clamp01(busyTime.Seconds() / availableTime.Seconds())
	}

	if len(outcomes) == 0 {
		return analytics.NewDailyScore(userID, day, 100, 1, 0, utilization, finalized, now)
	}

	var completed, scheduled float64
	for _, o := range outcomes {
		scheduled += o.Score
		if o.Completed {
			completed += o.Score
		}
	}
	ratio := 0.0
	if scheduled > 0 {
		ratio = completed / scheduled
	}

	penalty := c.cfg.PostponePenaltyPoints * float64(postponeIncrements)
	value := clampScore(100*ratio - penalty)

	return analytics.NewDailyScore(userID, day, value, ratio, penalty, utilization, finalized, now)
}

// ComputeWeekly returns the recency-weighted mean of the last seven
// daily scores. History may arrive in any order.
func (c *ScoreCalculator) ComputeWeekly(history []analytics.DailyScore) float64 {
	if len(history) == 0 {
		return 0
	}
	recent := sortedByDayDesc(history)
	if len(recent) > 7 {
		recent = recent[:7]
	}

	var weighted, total float64
	weight := 1.0
	for _, s := range recent {
		weighted += s.Value * weight
		total += weight
		weight *= c.cfg.WeeklyDecay
	}
	return weighted / total
}

// ComputeTrend fits a least-squares line through the trailing score
// window and classifies burnout risk from the slope and from mean
// energy utilization.
func (c *ScoreCalculator) ComputeTrend(
	userID uuid.UUID,
	history []analytics.DailyScore,
	now time.Time,
) analytics.TrendReport {
	window := sortedByDayDesc(history)
	if len(window) > c.cfg.TrendWindowDays {
		window = window[:c.cfg.TrendWindowDays]
	}
	// oldest first for the fit
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}

	slope := linearSlope(window)
	weekly := c.ComputeWeekly(history)

	var utilSum float64
	for _, s := range window {
		utilSum += s.EnergyUtilization
	}
	meanUtil := 0.0
	if len(window) > 0 {
		meanUtil = utilSum / float64(len(window))
	}

	risk := c.classifyRisk(slope, meanUtil, declineStreak(window))

	confidence := 0.0
	if c.cfg.TrendWindowDays > 0 {
		confidence = clamp01(float64(len(window)) / float64(c.cfg.TrendWindowDays))
	}

	return analytics.TrendReport{
		UserID:      userID,
		WindowDays:  len(window),
		Slope:       slope,
		WeeklyScore: weekly,
		Risk:        risk,
		Confidence:  confidence,
		ComputedAt:  now,
	}
}

func (c *ScoreCalculator) classifyRisk(slope, meanUtil float64, streak int) analytics.BurnoutRisk {
	if streak < c.cfg.MinDeclineStreak {
		return analytics.RiskNone
	}
	switch {
	case slope <= -c.cfg.SlopeHigh && meanUtil >= c.cfg.UtilizationHigh:
		return analytics.RiskHigh
	case slope <= -c.cfg.SlopeElevated && meanUtil >= c.cfg.UtilizationElevated:
		return analytics.RiskElevated
	default:
		return analytics.RiskNone
	}
}

func sortedByDayDesc(history []analytics.DailyScore) []analytics.DailyScore {
	out := make([]analytics.DailyScore, len(history))
	copy(out, history)
	sort.Slice(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	return out
}

// declineStreak counts trailing consecutive days with a falling score.
func declineStreak(ascending []analytics.DailyScore) int {
	streak := 0
	for i := len(ascending) - 1; i > 0; i-- {
		if ascending[i].Value < ascending[i-1].Value {
			streak++
			continue
		}
		break
	}
	return streak
}

// linearSlope fits y = a + b*x over day indices and returns b.
func linearSlope(ascending []analytics.DailyScore) float64 {
	n := float64(len(ascending))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, s := range ascending {
		x := float64(i)
		sumX += x
		sumY += s.Value
		sumXY += x * s.Value
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
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
