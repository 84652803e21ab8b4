package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(t *testing.T, userID uuid.UUID, hour, minute, durMin int, source SlotSource) *ScheduledSlot {
	t.Helper()
	start := time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	var taskID *uuid.UUID
	id := uuid.New()
	taskID = &id
	slot, err := NewScheduledSlot(userID, taskID, "work", start, start.Add(time.Duration(durMin)*time.Minute), false, source)
	require.NoError(t, err)
	return slot
}

func breakAt(t *testing.T, userID uuid.UUID, hour, minute, durMin int) *ScheduledSlot {
	t.Helper()
	start := time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	slot, err := NewScheduledSlot(userID, nil, "break", start, start.Add(time.Duration(durMin)*time.Minute), true, SourceAuto)
	require.NoError(t, err)
	return slot
}

func TestDayPlan_AddManualSlot(t *testing.T) {
	userID := uuid.New()
	plan := NewDayPlan(userID, time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), plan.Day(), "day is normalized to midnight")

	slot := slotAt(t, userID, 9, 0, 60, SourceManual)
	require.NoError(t, plan.AddManualSlot(slot))

	assert.Len(t, plan.ManualSlots(), 1)
	assert.Empty(t, plan.GeneratedSlots())

	events := plan.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, RoutingKeySlotScheduled, events[0].RoutingKey())
}

func TestDayPlan_RejectsOverlappingManualSlots(t *testing.T) {
	userID := uuid.New()
	plan := NewDayPlan(userID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, plan.AddManualSlot(slotAt(t, userID, 9, 0, 60, SourceManual)))

	err := plan.AddManualSlot(slotAt(t, userID, 9, 30, 60, SourceManual))
	assert.ErrorIs(t, err, ErrSlotOverlap)

	// adjacent is fine: intervals are half-open
	assert.NoError(t, plan.AddManualSlot(slotAt(t, userID, 10, 0, 30, SourceManual)))
}

func TestDayPlan_RejectsSlotOutsideDay(t *testing.T) {
	userID := uuid.New()
	plan := NewDayPlan(userID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	taskID := uuid.New()
	start := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	slot, err := NewScheduledSlot(userID, &taskID, "tomorrow", start, start.Add(time.Hour), false, SourceManual)
	require.NoError(t, err)

	assert.ErrorIs(t, plan.AddManualSlot(slot), ErrSlotOutsideDay)
}

func TestDayPlan_ReplaceGeneratedPreservesManualSlots(t *testing.T) {
	userID := uuid.New()
	plan := NewDayPlan(userID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	manual := slotAt(t, userID, 12, 0, 60, SourceManual)
	require.NoError(t, plan.AddManualSlot(manual))
	require.NoError(t, plan.ReplaceGenerated([]*ScheduledSlot{
		slotAt(t, userID, 9, 0, 60, SourceAuto),
		breakAt(t, userID, 10, 0, 10),
	}))

	// a second run replaces the whole generated set
	require.NoError(t, plan.ReplaceGenerated([]*ScheduledSlot{
		slotAt(t, userID, 14, 0, 90, SourceAuto),
	}))

	assert.Len(t, plan.GeneratedSlots(), 1)
	require.Len(t, plan.ManualSlots(), 1)
	assert.Equal(t, manual.ID(), plan.ManualSlots()[0].ID())
}

func TestDayPlan_ReplaceGeneratedRejectsCollisionWithManual(t *testing.T) {
	userID := uuid.New()
	plan := NewDayPlan(userID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, plan.AddManualSlot(slotAt(t, userID, 9, 0, 60, SourceManual)))

	err := plan.ReplaceGenerated([]*ScheduledSlot{slotAt(t, userID, 9, 30, 60, SourceAuto)})
	assert.ErrorIs(t, err, ErrSlotOverlap)
}

func TestDayPlan_ReplaceGeneratedRejectsInternalOverlap(t *testing.T) {
	userID := uuid.New()
	plan := NewDayPlan(userID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	err := plan.ReplaceGenerated([]*ScheduledSlot{
		slotAt(t, userID, 9, 0, 60, SourceAuto),
		slotAt(t, userID, 9, 45, 30, SourceAuto),
	})
	assert.ErrorIs(t, err, ErrSlotOverlap)
}

func TestDayPlan_RemoveSlot(t *testing.T) {
	userID := uuid.New()
	plan := NewDayPlan(userID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	manual := slotAt(t, userID, 9, 0, 60, SourceManual)
	require.NoError(t, plan.AddManualSlot(manual))
	require.NoError(t, plan.ReplaceGenerated([]*ScheduledSlot{slotAt(t, userID, 11, 0, 60, SourceAuto)}))

	generated := plan.GeneratedSlots()[0]
	assert.ErrorIs(t, plan.RemoveSlot(generated.ID()), ErrSlotNotRemovable)

	require.NoError(t, plan.RemoveSlot(manual.ID()))
	assert.Empty(t, plan.ManualSlots())

	assert.ErrorIs(t, plan.RemoveSlot(uuid.New()), ErrSlotNotFound)
}

func TestDayPlan_SlotsSortedByStart(t *testing.T) {
	userID := uuid.New()
	plan := NewDayPlan(userID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))

	require.NoError(t, plan.AddManualSlot(slotAt(t, userID, 15, 0, 30, SourceManual)))
	require.NoError(t, plan.AddManualSlot(slotAt(t, userID, 9, 0, 30, SourceManual)))
	require.NoError(t, plan.AddManualSlot(slotAt(t, userID, 12, 0, 30, SourceManual)))

	slots := plan.Slots()
	require.Len(t, slots, 3)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartAt().Before(slots[i].StartAt()))
	}
}

func TestDayPlan_Rehydrate(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	created := day.Add(-24 * time.Hour)

	slots := []*ScheduledSlot{
		slotAt(t, userID, 11, 0, 30, SourceAuto),
		slotAt(t, userID, 9, 0, 30, SourceManual),
	}
	plan := RehydrateDayPlan(id, userID, day, slots, 3, created, created)

	assert.Equal(t, id, plan.ID())
	assert.Equal(t, 3, plan.Version())
	assert.Empty(t, plan.DomainEvents())
	require.Len(t, plan.Slots(), 2)
	assert.True(t, plan.Slots()[0].StartAt().Before(plan.Slots()[1].StartAt()))
}
