package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScoreBreakdown itemizes the factors behind a candidate's score so the
// decision can be explained after the fact.
type ScoreBreakdown struct {
	Priority        float64 `json:"priority"`
	Urgency         float64 `json:"urgency"`
	PostponePenalty float64 `json:"postpone_penalty"`
	Composite       float64 `json:"composite"`
	EnergyMatch     float64 `json:"energy_match"`
	DurationFit     float64 `json:"duration_fit"`
	MorningBonus    float64 `json:"morning_bonus"`
}

// Candidate is one evaluated placement for a task.
type Candidate struct {
	StartAt   time.Time      `json:"start_at"`
	EndAt     time.Time      `json:"end_at"`
	Fit       float64        `json:"fit"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// AIDecision records a recommendation: the chosen placement, the
// runners-up, and a human-readable explanation. Stored for audit.
type AIDecision struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	TaskID       uuid.UUID
	Chosen       Candidate
	Alternatives []Candidate
	Confidence   float64
	Explanation  string
	DecidedAt    time.Time
}

// NewAIDecision creates a decision record.
func NewAIDecision(
	userID, taskID uuid.UUID,
	chosen Candidate,
	alternatives []Candidate,
	confidence float64,
	explanation string,
	decidedAt time.Time,
) AIDecision {
	return AIDecision{
		ID:           uuid.New(),
		UserID:       userID,
		TaskID:       taskID,
		Chosen:       chosen,
		Alternatives: alternatives,
		Confidence:   confidence,
		Explanation:  explanation,
		DecidedAt:    decidedAt,
	}
}
