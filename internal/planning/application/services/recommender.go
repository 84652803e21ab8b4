package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	planning "github.com/dayflow/dayflow/internal/planning/domain"
	"github.com/google/uuid"
)

// ErrNoFeasibleSlot is returned when no window in the horizon can fit
// the task. Callers surface it as a declined recommendation.
var ErrNoFeasibleSlot = errors.New("no feasible slot within the horizon")

// RecommenderConfig tunes candidate generation and ranking.
type RecommenderConfig struct {
	CandidateStep time.Duration // spacing between candidate start times
	Alternatives  int           // runners-up retained for explainability
	EnergyWeight  float64
	UrgencyWeight float64
	MorningBonus  float64 // flat boost for starts between 08:00 and 12:00
}

// DefaultRecommenderConfig returns the production ranking weights.
func DefaultRecommenderConfig() RecommenderConfig {
	return RecommenderConfig{
		CandidateStep: 15 * time.Minute,
		Alternatives:  3,
		EnergyWeight:  0.7,
		UrgencyWeight: 0.3,
		MorningBonus:  0.2,
	}
}

const (
	morningStartHour = 8
	morningEndHour   = 12
)

// SmartRecommender ranks candidate placements for a single task across
// a multi-day horizon. Read-only and advisory; it never mutates a plan.
type SmartRecommender struct {
	scoring *ScoringModel
	cfg     RecommenderConfig
}

// NewSmartRecommender creates a recommender over the given scoring model.
func NewSmartRecommender(scoring *ScoringModel, cfg RecommenderConfig) *SmartRecommender {
	return &SmartRecommender{scoring: scoring, cfg: cfg}
}

// Recommend evaluates every candidate start across the free windows and
// returns the best placement with its explanation record.
func (r *SmartRecommender) Recommend(
	userID uuid.UUID,
	task PlannableTask,
	windows []planning.Window,
	profile *planning.EnergyProfile,
	now time.Time,
) (planning.AIDecision, error) {
	if task.Duration.Minutes() <= 0 {
		return planning.AIDecision{}, ErrInvalidTaskDuration
	}
	need := task.Duration.Std()

	var horizonEnd time.Time
	for _, w := range windows {
		if w.End.After(horizonEnd) {
			horizonEnd = w.End
		}
	}

	var candidates []planning.Candidate
	for _, w := range windows {
		if w.Duration() < need {
			continue
		}
		for start := w.Start; !start.Add(need).After(w.End); start = start.Add(r.cfg.CandidateStep) {
			candidates = append(candidates, r.evaluate(task, start, need, profile, now, horizonEnd))
		}
	}
	if len(candidates) == 0 {
		return planning.AIDecision{}, ErrNoFeasibleSlot
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Fit != candidates[j].Fit {
			return candidates[i].Fit > candidates[j].Fit
		}
		return candidates[i].StartAt.Before(candidates[j].StartAt)
	})

	chosen := candidates[0]
	alternatives := candidates[1:]
	if len(alternatives) > r.cfg.Alternatives {
		alternatives = alternatives[:r.cfg.Alternatives]
	}

	confidence := 1.0
	if len(alternatives) > 0 {
		gap := chosen.Fit - alternatives[0].Fit
		confidence = clamp01(0.5 + gap*0.5)
	}

	return planning.NewAIDecision(
		userID,
		task.ID,
		chosen,
		alternatives,
		confidence,
		r.explain(task, chosen),
		now,
	), nil
}

// evaluate scores one candidate placement. The fit blends how well the
// interval's energy suits the task, how early the placement lands
// relative to the deadline runway, and a flat morning boost.
func (r *SmartRecommender) evaluate(
	task PlannableTask,
	start time.Time,
	need time.Duration,
	profile *planning.EnergyProfile,
	now time.Time,
	horizonEnd time.Time,
) planning.Candidate {
	match := r.scoring.EnergyMatch(meanLevel(profile, start, need), task.Energy)
	urgency := r.scoring.Urgency(task.Deadline, now)

	proximity := 0.0
	if task.Deadline != nil {
		runway := horizonEnd.Sub(now)
		if runway > 0 {
			proximity = clamp01(1 - start.Sub(now).Seconds()/runway.Seconds())
		}
	}

	bonus := 0.0
	if hour := start.UTC().Hour(); hour >= morningStartHour && hour < morningEndHour {
		bonus = r.cfg.MorningBonus
	}

	fit := r.cfg.EnergyWeight*match + r.cfg.UrgencyWeight*urgency*proximity + bonus
	return planning.Candidate{
		StartAt: start,
		EndAt:   start.Add(need),
		Fit:     fit,
		Breakdown: planning.ScoreBreakdown{
			Priority:        task.Priority.Weight(),
			Urgency:         urgency,
			PostponePenalty: float64(task.PostponeCount),
			Composite:       r.scoring.CompositeScore(task.Priority, task.Deadline, task.PostponeCount, now),
			EnergyMatch:     match,
			// Candidates are only generated where the task fully
			// fits, so the duration component is always exact.
			DurationFit:  1,
			MorningBonus: bonus,
		},
	}
}

func (r *SmartRecommender) explain(task PlannableTask, chosen planning.Candidate) string {
	when := chosen.StartAt.Format("Mon 15:04")
	if task.Deadline != nil {
		return fmt.Sprintf(
			"%s fits best at %s: energy match %.2f with %.1fh left before the deadline",
			task.Title, when, chosen.Breakdown.EnergyMatch, task.Deadline.Sub(chosen.EndAt).Hours())
	}
	return fmt.Sprintf("%s fits best at %s: energy match %.2f, no deadline pressure",
		task.Title, when, chosen.Breakdown.EnergyMatch)
}
