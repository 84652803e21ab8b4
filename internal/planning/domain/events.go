package domain

import (
	"time"

	"github.com/dayflow/dayflow/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateTypePlan = "day_plan"

// Routing keys for plan events.
const (
	RoutingKeyPlanRegenerated = "core.plan.regenerated"
	RoutingKeySlotScheduled   = "core.plan.slot_scheduled"
)

// PlanRegenerated is emitted when a planning run replaces the generated
// slots of a day plan.
type PlanRegenerated struct {
	domain.BaseEvent
	UserID    uuid.UUID
	Day       time.Time
	SlotCount int
}

func NewPlanRegenerated(planID, userID uuid.UUID, day time.Time, slotCount int) PlanRegenerated {
	return PlanRegenerated{
		BaseEvent: domain.NewBaseEvent(planID, aggregateTypePlan, RoutingKeyPlanRegenerated),
		UserID:    userID,
		Day:       day,
		SlotCount: slotCount,
	}
}

// SlotScheduled is emitted when a single slot is committed to a plan,
// either manually or as a confirmed recommendation.
type SlotScheduled struct {
	domain.BaseEvent
	SlotID  uuid.UUID
	TaskID  *uuid.UUID
	StartAt time.Time
	EndAt   time.Time
	Source  SlotSource
}

func NewSlotScheduled(planID uuid.UUID, slot *ScheduledSlot) SlotScheduled {
	return SlotScheduled{
		BaseEvent: domain.NewBaseEvent(planID, aggregateTypePlan, RoutingKeySlotScheduled),
		SlotID:    slot.ID(),
		TaskID:    slot.TaskID(),
		StartAt:   slot.StartAt(),
		EndAt:     slot.EndAt(),
		Source:    slot.Source(),
	}
}
