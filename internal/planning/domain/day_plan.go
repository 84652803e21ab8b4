package domain

import (
	"errors"
	"time"

	"github.com/dayflow/dayflow/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrSlotOverlap      = errors.New("slot overlaps an existing slot")
	ErrSlotNotFound     = errors.New("slot not found in plan")
	ErrSlotNotRemovable = errors.New("only manually placed slots can be removed")
	ErrSlotOutsideDay   = errors.New("slot does not fall on the plan's day")
)

// DayPlan is the aggregate root for a single user's single calendar day.
// It owns every scheduled slot on that day and enforces that no two
// slots overlap.
type DayPlan struct {
	domain.BaseAggregateRoot
	userID uuid.UUID
	day    time.Time // truncated to midnight UTC
	slots  []*ScheduledSlot
}

// NewDayPlan creates an empty plan for the given day.
func NewDayPlan(userID uuid.UUID, day time.Time) *DayPlan {
	return &DayPlan{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		day:               truncateToDay(day),
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p *DayPlan) UserID() uuid.UUID { return p.userID }
func (p *DayPlan) Day() time.Time    { return p.day }

// Slots returns every slot on the plan ordered by start time.
func (p *DayPlan) Slots() []*ScheduledSlot {
	out := make([]*ScheduledSlot, len(p.slots))
	copy(out, p.slots)
	return out
}

// ManualSlots returns the user-placed slots.
func (p *DayPlan) ManualSlots() []*ScheduledSlot {
	var out []*ScheduledSlot
	for _, s := range p.slots {
		if s.Source() == SourceManual {
			out = append(out, s)
		}
	}
	return out
}

// GeneratedSlots returns the planner- and recommender-placed slots.
func (p *DayPlan) GeneratedSlots() []*ScheduledSlot {
	var out []*ScheduledSlot
	for _, s := range p.slots {
		if s.AIGenerated() {
			out = append(out, s)
		}
	}
	return out
}

// FindSlot returns the slot with the given ID, or nil.
func (p *DayPlan) FindSlot(slotID uuid.UUID) *ScheduledSlot {
	for _, s := range p.slots {
		if s.ID() == slotID {
			return s
		}
	}
	return nil
}

func (p *DayPlan) onDay(s *ScheduledSlot) bool {
	next := p.day.Add(24 * time.Hour)
	return !s.StartAt().Before(p.day) && !s.EndAt().After(next)
}

func (p *DayPlan) overlapsAny(s *ScheduledSlot, skip func(*ScheduledSlot) bool) bool {
	for _, existing := range p.slots {
		if skip != nil && skip(existing) {
			continue
		}
		if existing.OverlapsWith(s) {
			return true
		}
	}
	return false
}

// AddManualSlot places a user-chosen slot on the plan. It is rejected
// when it overlaps any existing slot.
func (p *DayPlan) AddManualSlot(slot *ScheduledSlot) error {
	if slot.Source() != SourceManual {
		return errors.New("slot source must be manual")
	}
	if !p.onDay(slot) {
		return ErrSlotOutsideDay
	}
	if p.overlapsAny(slot, nil) {
		return ErrSlotOverlap
	}
	p.insertSorted(slot)
	p.Touch()

	event := NewSlotScheduled(p.ID(), slot)
	p.AddDomainEvent(&event)
	return nil
}

// ConfirmRecommendedSlot places a recommender-produced slot. Unlike
// generated slots it survives replans only by being regenerated, so it
// carries the ai source rather than manual.
func (p *DayPlan) ConfirmRecommendedSlot(slot *ScheduledSlot) error {
	if slot.Source() != SourceAI {
		return errors.New("slot source must be ai")
	}
	if !p.onDay(slot) {
		return ErrSlotOutsideDay
	}
	if p.overlapsAny(slot, nil) {
		return ErrSlotOverlap
	}
	p.insertSorted(slot)
	p.Touch()

	event := NewSlotScheduled(p.ID(), slot)
	p.AddDomainEvent(&event)
	return nil
}

// ReplaceGenerated drops every generated slot and installs the given
// batch. Manual slots are untouched; the new batch must not collide
// with them or with itself.
func (p *DayPlan) ReplaceGenerated(slots []*ScheduledSlot) error {
	manual := p.ManualSlots()

	for i, s := range slots {
		if !s.AIGenerated() {
			return errors.New("generated batch must carry ai or auto source")
		}
		if !p.onDay(s) {
			return ErrSlotOutsideDay
		}
		for _, m := range manual {
			if m.OverlapsWith(s) {
				return ErrSlotOverlap
			}
		}
		for _, prev := range slots[:i] {
			if prev.OverlapsWith(s) {
				return ErrSlotOverlap
			}
		}
	}

	p.slots = nil
	for _, m := range manual {
		p.insertSorted(m)
	}
	for _, s := range slots {
		p.insertSorted(s)
	}
	p.Touch()

	event := NewPlanRegenerated(p.ID(), p.userID, p.day, len(slots))
	p.AddDomainEvent(&event)
	return nil
}

// RemoveSlot deletes a manual slot from the plan. Generated slots are
// owned by the planner and can only disappear through a regeneration.
func (p *DayPlan) RemoveSlot(slotID uuid.UUID) error {
	for i, s := range p.slots {
		if s.ID() != slotID {
			continue
		}
		if s.Source() != SourceManual {
			return ErrSlotNotRemovable
		}
		p.slots = append(p.slots[:i], p.slots[i+1:]...)
		p.Touch()
		return nil
	}
	return ErrSlotNotFound
}

func (p *DayPlan) insertSorted(slot *ScheduledSlot) {
	idx := len(p.slots)
	for i, s := range p.slots {
		if slot.StartAt().Before(s.StartAt()) {
			idx = i
			break
		}
	}
	p.slots = append(p.slots, nil)
	copy(p.slots[idx+1:], p.slots[idx:])
	p.slots[idx] = slot
}

// RehydrateDayPlan recreates a plan from persisted state.
func RehydrateDayPlan(
	id uuid.UUID,
	userID uuid.UUID,
	day time.Time,
	slots []*ScheduledSlot,
	version int,
	createdAt, updatedAt time.Time,
) *DayPlan {
	plan := &DayPlan{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(
			domain.RehydrateBaseEntity(id, createdAt, updatedAt), version),
		userID: userID,
		day:    truncateToDay(day),
	}
	for _, s := range slots {
		plan.insertSorted(s)
	}
	return plan
}
