package services

import (
	"errors"
	"sort"
	"time"

	planning "github.com/dayflow/dayflow/internal/planning/domain"
	"github.com/dayflow/dayflow/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

// ErrInvalidTaskDuration rejects tasks whose estimate is not positive.
// Such a task indicates a caller bug, so the whole run fails rather
// than silently skipping it.
var ErrInvalidTaskDuration = errors.New("task duration must be positive")

// PlannerConfig tunes the greedy allocator.
type PlannerConfig struct {
	MaxContinuousWork time.Duration
	BreakDuration     time.Duration
}

// DefaultPlannerConfig returns the production break policy.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		MaxContinuousWork: 90 * time.Minute,
		BreakDuration:     10 * time.Minute,
	}
}

// PlannableTask is the planner's read-only view of a task. The command
// layer maps task aggregates into this shape so the engine stays pure.
type PlannableTask struct {
	ID            uuid.UUID
	Title         string
	Priority      value_objects.Priority
	Duration      value_objects.Duration
	Energy        value_objects.EnergyRequirement
	Deadline      *time.Time
	PostponeCount int
}

// PlannedSlot is a planner-proposed interval. It carries no identity;
// the aggregate assigns IDs when the plan is committed, which keeps two
// runs over the same inputs byte-for-byte identical.
type PlannedSlot struct {
	TaskID  *uuid.UUID
	Title   string
	StartAt time.Time
	EndAt   time.Time
	IsBreak bool
}

// OverloadReport compares the total demanded task time against the
// free time actually available, before any placement happens.
type OverloadReport struct {
	Overloaded       bool
	TaskMinutes      int
	AvailableMinutes int
	ExcessMinutes    int
}

// PlanResult is the outcome of one planning run.
type PlanResult struct {
	Slots    []PlannedSlot
	Unplaced []uuid.UUID // tasks no remaining window could fit
	Overload OverloadReport
}

// PlanningEngine assigns ranked tasks into free windows and inserts
// breaks. It holds no mutable state and performs no I/O.
type PlanningEngine struct {
	scoring *ScoringModel
	cfg     PlannerConfig
}

// NewPlanningEngine creates an engine with the given scoring model and
// break policy.
func NewPlanningEngine(scoring *ScoringModel, cfg PlannerConfig) *PlanningEngine {
	return &PlanningEngine{scoring: scoring, cfg: cfg}
}

type openWindow struct {
	start         time.Time
	end           time.Time
	workSinceRest time.Duration
}

func (w *openWindow) remaining() time.Duration { return w.end.Sub(w.start) }

// Plan greedily allocates tasks into the given free windows. Given
// identical inputs and the same now, two runs return identical results.
func (e *PlanningEngine) Plan(
	tasks []PlannableTask,
	windows []planning.Window,
	profile *planning.EnergyProfile,
	now time.Time,
) (PlanResult, error) {
	for _, t := range tasks {
		if t.Duration.Minutes() <= 0 {
			return PlanResult{}, ErrInvalidTaskDuration
		}
	}

	ranked := e.rank(tasks, now)

	var result PlanResult
	result.Overload = e.DetectOverload(tasks, windows)

	open := make([]*openWindow, 0, len(windows))
	for _, w := range windows {
		open = append(open, &openWindow{start: w.Start, end: w.End})
	}
	sort.Slice(open, func(i, j int) bool { return open[i].start.Before(open[j].start) })

	for _, task := range ranked {
		need := task.Duration.Std()

		best := -1
		bestMatch := -1.0
		for i, w := range open {
			if w.remaining() < need {
				continue
			}
			match := e.scoring.EnergyMatch(meanLevel(profile, w.start, need), task.Energy)
			if match > bestMatch {
				best, bestMatch = i, match
			}
		}
		if best < 0 {
			result.Unplaced = append(result.Unplaced, task.ID)
			continue
		}

		w := open[best]
		taskID := task.ID
		result.Slots = append(result.Slots, PlannedSlot{
			TaskID:  &taskID,
			Title:   task.Title,
			StartAt: w.start,
			EndAt:   w.start.Add(need),
		})
		w.start = w.start.Add(need)
		w.workSinceRest += need

		if w.workSinceRest >= e.cfg.MaxContinuousWork {
			if rest, ok := e.placeBreak(open, best); ok {
				result.Slots = append(result.Slots, rest)
			}
		}
	}

	sort.Slice(result.Slots, func(i, j int) bool {
		return result.Slots[i].StartAt.Before(result.Slots[j].StartAt)
	})
	return result, nil
}

// DetectOverload compares total task demand against total free time.
// Breaks are not counted; the excess is the raw shortfall in minutes.
func (e *PlanningEngine) DetectOverload(tasks []PlannableTask, windows []planning.Window) OverloadReport {
	var taskMinutes int
	for _, t := range tasks {
		taskMinutes += t.Duration.Minutes()
	}
	var availableMinutes int
	for _, w := range windows {
		availableMinutes += int(w.Duration().Minutes())
	}

	report := OverloadReport{
		TaskMinutes:      taskMinutes,
		AvailableMinutes: availableMinutes,
	}
	if taskMinutes > availableMinutes {
		report.Overloaded = true
		report.ExcessMinutes = taskMinutes - availableMinutes
	}
	return report
}

// placeBreak inserts a rest interval after the span that just crossed
// the continuous-work threshold, in the same window when room remains,
// otherwise at the head of the next window in time order. Returns false
// when no window can host a full break.
func (e *PlanningEngine) placeBreak(open []*openWindow, from int) (PlannedSlot, bool) {
	w := open[from]
	w.workSinceRest = 0

	if w.remaining() >= e.cfg.BreakDuration {
		slot := PlannedSlot{StartAt: w.start, EndAt: w.start.Add(e.cfg.BreakDuration), IsBreak: true}
		w.start = slot.EndAt
		return slot, true
	}

	// A window too small for the break is sacrificed; the gap to the
	// next window then acts as rest on its own.
	w.start = w.end

	for _, next := range open {
		if next == w || next.start.Before(w.end) {
			continue
		}
		if next.remaining() < e.cfg.BreakDuration {
			continue
		}
		slot := PlannedSlot{StartAt: next.start, EndAt: next.start.Add(e.cfg.BreakDuration), IsBreak: true}
		next.start = slot.EndAt
		next.workSinceRest = 0
		return slot, true
	}

	return PlannedSlot{}, false
}

// rank orders tasks by descending composite score, breaking ties by
// nearer deadline (absent deadline last), then by ID.
func (e *PlanningEngine) rank(tasks []PlannableTask, now time.Time) []PlannableTask {
	type scored struct {
		task  PlannableTask
		score float64
	}
	out := make([]scored, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, scored{
			task:  t,
			score: e.scoring.CompositeScore(t.Priority, t.Deadline, t.PostponeCount, now),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		di, dj := out[i].task.Deadline, out[j].task.Deadline
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		return out[i].task.ID.String() < out[j].task.ID.String()
	})

	ranked := make([]PlannableTask, len(out))
	for i, s := range out {
		ranked[i] = s.task
	}
	return ranked
}

// meanLevel averages the profile's energy curve over the interval
// [start, start+d), weighting each touched hour by its overlap.
func meanLevel(profile *planning.EnergyProfile, start time.Time, d time.Duration) float64 {
	if profile == nil || d <= 0 {
		return planning.DefaultEnergyLevel
	}
	end := start.Add(d)
	var weighted, total float64
	cursor := start
	for cursor.Before(end) {
		hourEnd := cursor.Truncate(time.Hour).Add(time.Hour)
		if hourEnd.After(end) {
			hourEnd = end
		}
		span := hourEnd.Sub(cursor).Minutes()
		weighted += profile.LevelAt(cursor) * span
		total += span
		cursor = hourEnd
	}
	if total == 0 {
		return profile.LevelAt(start)
	}
	return weighted / total
}
