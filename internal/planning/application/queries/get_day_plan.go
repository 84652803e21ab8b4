package queries

import (
	"context"
	"time"

	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	"github.com/google/uuid"
)

// GetDayPlanQuery requests a user's plan for one day.
type GetDayPlanQuery struct {
	UserID uuid.UUID
	Day    time.Time
}

// SlotDTO is the read model for a scheduled slot.
type SlotDTO struct {
	ID               uuid.UUID  `json:"id"`
	TaskID           *uuid.UUID `json:"task_id,omitempty"`
	Title            string     `json:"title"`
	StartAt          time.Time  `json:"start_at"`
	EndAt            time.Time  `json:"end_at"`
	IsBreak          bool       `json:"is_break"`
	Source           string     `json:"source"`
	AIGenerated      bool       `json:"ai_generated"`
	NotificationSent bool       `json:"notification_sent"`
}

// DayPlanDTO is the read model for a day plan.
type DayPlanDTO struct {
	ID    uuid.UUID `json:"id"`
	Day   time.Time `json:"day"`
	Slots []SlotDTO `json:"slots"`
}

// GetDayPlanHandler handles the GetDayPlanQuery.
type GetDayPlanHandler struct {
	planRepo planningDomain.PlanRepository
}

// NewGetDayPlanHandler creates a new handler.
func NewGetDayPlanHandler(planRepo planningDomain.PlanRepository) *GetDayPlanHandler {
	return &GetDayPlanHandler{planRepo: planRepo}
}

// Handle executes the query. A missing plan returns an empty DTO rather
// than an error so callers can render an empty day.
func (h *GetDayPlanHandler) Handle(ctx context.Context, query GetDayPlanQuery) (*DayPlanDTO, error) {
	plan, err := h.planRepo.FindByUserAndDay(ctx, query.UserID, query.Day)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		day := time.Date(query.Day.Year(), query.Day.Month(), query.Day.Day(), 0, 0, 0, 0, time.UTC)
		return &DayPlanDTO{Day: day, Slots: []SlotDTO{}}, nil
	}

	slots := plan.Slots()
	dto := &DayPlanDTO{
		ID:    plan.ID(),
		Day:   plan.Day(),
		Slots: make([]SlotDTO, 0, len(slots)),
	}
	for _, s := range slots {
		dto.Slots = append(dto.Slots, SlotDTO{
			ID:               s.ID(),
			TaskID:           s.TaskID(),
			Title:            s.Title(),
			StartAt:          s.StartAt(),
			EndAt:            s.EndAt(),
			IsBreak:          s.IsBreak(),
			Source:           s.Source().String(),
			AIGenerated:      s.AIGenerated(),
			NotificationSent: s.NotificationSent(),
		})
	}
	return dto, nil
}
