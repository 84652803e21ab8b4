package queries

import (
	"context"
	"errors"
	"time"

	"github.com/dayflow/dayflow/internal/planning/application/services"
	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// RecommendSlotQuery asks for the best placement of one task over a
// lookahead horizon. Read-only; nothing is scheduled until the caller
// confirms the recommendation.
type RecommendSlotQuery struct {
	UserID      uuid.UUID
	TaskID      uuid.UUID
	HorizonDays int       // zero means the configured default
	Now         time.Time // zero means wall clock
}

// RecommendSlotHandler handles the RecommendSlotQuery.
type RecommendSlotHandler struct {
	taskRepo           taskDomain.Repository
	planRepo           planningDomain.PlanRepository
	profileRepo        planningDomain.EnergyProfileRepository
	decisionRepo       planningDomain.DecisionRepository
	resolver           *services.AvailabilityResolver
	recommender        *services.SmartRecommender
	defaultHorizonDays int
	maxHorizonDays     int
}

// NewRecommendSlotHandler creates a new handler.
func NewRecommendSlotHandler(
	taskRepo taskDomain.Repository,
	planRepo planningDomain.PlanRepository,
	profileRepo planningDomain.EnergyProfileRepository,
	decisionRepo planningDomain.DecisionRepository,
	resolver *services.AvailabilityResolver,
	recommender *services.SmartRecommender,
	defaultHorizonDays int,
) *RecommendSlotHandler {
	return &RecommendSlotHandler{
		taskRepo:           taskRepo,
		planRepo:           planRepo,
		profileRepo:        profileRepo,
		decisionRepo:       decisionRepo,
		resolver:           resolver,
		recommender:        recommender,
		defaultHorizonDays: defaultHorizonDays,
		maxHorizonDays:     31,
	}
}

// Handle executes the query.
func (h *RecommendSlotHandler) Handle(ctx context.Context, query RecommendSlotQuery) (*planningDomain.AIDecision, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	horizon := query.HorizonDays
	if horizon <= 0 {
		horizon = h.defaultHorizonDays
	}
	if horizon > h.maxHorizonDays {
		horizon = h.maxHorizonDays
	}

	task, err := h.taskRepo.FindByID(ctx, query.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, taskDomain.ErrNotFound
	}

	profile, err := h.profileRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = planningDomain.DefaultEnergyProfile(query.UserID)
	}

	firstDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.Add(time.Duration(horizon) * 24 * time.Hour)
	plans, err := h.planRepo.FindByUserInRange(ctx, query.UserID, firstDay, lastDay)
	if err != nil {
		return nil, err
	}

	busyByDay := make(map[time.Time][]*planningDomain.ScheduledSlot, len(plans))
	for _, plan := range plans {
		busyByDay[plan.Day()] = plan.Slots()
	}
	// A fully booked horizon surfaces as the usual declined
	// recommendation rather than a distinct error kind.
	windows, err := h.resolver.ResolveHorizon(busyByDay, now, horizon)
	if err != nil {
		if errors.Is(err, planningDomain.ErrEmptyAvailability) {
			return nil, services.ErrNoFeasibleSlot
		}
		return nil, err
	}

	decision, err := h.recommender.Recommend(query.UserID, services.PlannableTask{
		ID:            task.ID(),
		Title:         task.Title(),
		Priority:      task.Priority(),
		Duration:      task.Duration(),
		Energy:        task.Energy(),
		Deadline:      task.Deadline(),
		PostponeCount: task.PostponeCount(),
	}, windows, profile, now)
	if err != nil {
		return nil, err
	}

	// Audit trail is best effort; the recommendation stands even if the
	// decision store is unavailable.
	if h.decisionRepo != nil {
		_ = h.decisionRepo.Save(ctx, decision)
	}
	return &decision, nil
}
