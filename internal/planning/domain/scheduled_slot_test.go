package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduledSlot_Validation(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		taskID  *uuid.UUID
		start   time.Time
		end     time.Time
		isBreak bool
		wantErr error
	}{
		{"valid task slot", &taskID, start, start.Add(time.Hour), false, nil},
		{"valid break", nil, start, start.Add(10 * time.Minute), true, nil},
		{"end before start", &taskID, start, start.Add(-time.Hour), false, ErrInvalidTimeRange},
		{"zero length", &taskID, start, start, false, ErrInvalidTimeRange},
		{"short task slot is valid", &taskID, start, start.Add(3 * time.Minute), false, nil},
		{"break with task", &taskID, start, start.Add(10 * time.Minute), true, ErrBreakWithTask},
		{"task slot without task", nil, start, start.Add(time.Hour), false, ErrMissingTask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScheduledSlot(userID, tt.taskID, "x", tt.start, tt.end, tt.isBreak, SourceAuto)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduledSlot_OverlapsWith(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	at := func(hour, min int) time.Time {
		return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
	}
	mk := func(start, end time.Time) *ScheduledSlot {
		s, err := NewScheduledSlot(userID, &taskID, "x", start, end, false, SourceManual)
		require.NoError(t, err)
		return s
	}

	a := mk(at(9, 0), at(10, 0))

	assert.True(t, a.OverlapsWith(mk(at(9, 30), at(10, 30))))
	assert.True(t, a.OverlapsWith(mk(at(8, 0), at(11, 0))), "containment counts as overlap")
	assert.False(t, a.OverlapsWith(mk(at(10, 0), at(11, 0))), "half-open intervals touch without overlapping")
	assert.False(t, a.OverlapsWith(mk(at(7, 0), at(9, 0))))
}

func TestScheduledSlot_AIGenerated(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	for source, want := range map[SlotSource]bool{
		SourceManual: false,
		SourceAI:     true,
		SourceAuto:   true,
	} {
		slot, err := NewScheduledSlot(userID, &taskID, "x", start, start.Add(time.Hour), false, source)
		require.NoError(t, err)
		assert.Equal(t, want, slot.AIGenerated(), "source %s", source)
	}
}

func TestScheduledSlot_MarkNotified(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	slot, err := NewScheduledSlot(userID, &taskID, "x", start, start.Add(time.Hour), false, SourceAI)
	require.NoError(t, err)

	assert.False(t, slot.NotificationSent())
	slot.MarkNotified()
	assert.True(t, slot.NotificationSent())
}
