package domain

import (
	"errors"
	"time"

	"github.com/dayflow/dayflow/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange = errors.New("slot end must be after start")
	ErrBreakWithTask    = errors.New("break slot cannot reference a task")
	ErrMissingTask      = errors.New("non-break slot must reference a task")
)

// MinSlotDuration is the granularity below which free windows are not
// worth reporting. Slots themselves only require a positive duration;
// a valid short task must never fail scheduling.
const MinSlotDuration = 5 * time.Minute

// SlotSource classifies how a slot came to exist. Manual slots are
// user-placed and immutable to the planner; ai slots are confirmed
// recommender output; auto slots (tasks and breaks alike) are bulk
// regenerated by each planning run.
type SlotSource string

const (
	SourceManual SlotSource = "manual"
	SourceAI     SlotSource = "ai"
	SourceAuto   SlotSource = "auto"
)

// IsValid returns true for a known source tag.
func (s SlotSource) IsValid() bool {
	switch s {
	case SourceManual, SourceAI, SourceAuto:
		return true
	default:
		return false
	}
}

func (s SlotSource) String() string { return string(s) }

// ScheduledSlot represents a committed interval on a user's day plan.
type ScheduledSlot struct {
	domain.BaseEntity
	userID           uuid.UUID
	taskID           *uuid.UUID // nil for breaks
	title            string
	startAt          time.Time
	endAt            time.Time
	isBreak          bool
	source           SlotSource
	notificationSent bool
}

// NewScheduledSlot creates a new slot after validating its shape.
func NewScheduledSlot(
	userID uuid.UUID,
	taskID *uuid.UUID,
	title string,
	startAt, endAt time.Time,
	isBreak bool,
	source SlotSource,
) (*ScheduledSlot, error) {
	if !endAt.After(startAt) {
		return nil, ErrInvalidTimeRange
	}
	if isBreak && taskID != nil {
		return nil, ErrBreakWithTask
	}
	if !isBreak && taskID == nil {
		return nil, ErrMissingTask
	}

	return &ScheduledSlot{
		BaseEntity: domain.NewBaseEntity(),
		userID:     userID,
		taskID:     taskID,
		title:      title,
		startAt:    startAt,
		endAt:      endAt,
		isBreak:    isBreak,
		source:     source,
	}, nil
}

// Getters

func (s *ScheduledSlot) UserID() uuid.UUID      { return s.userID }
func (s *ScheduledSlot) TaskID() *uuid.UUID     { return s.taskID }
func (s *ScheduledSlot) Title() string          { return s.title }
func (s *ScheduledSlot) StartAt() time.Time     { return s.startAt }
func (s *ScheduledSlot) EndAt() time.Time       { return s.endAt }
func (s *ScheduledSlot) IsBreak() bool          { return s.isBreak }
func (s *ScheduledSlot) Source() SlotSource     { return s.source }
func (s *ScheduledSlot) NotificationSent() bool { return s.notificationSent }

// Duration returns the slot duration.
func (s *ScheduledSlot) Duration() time.Duration {
	return s.endAt.Sub(s.startAt)
}

// OverlapsWith checks half-open [start, end) interval overlap.
func (s *ScheduledSlot) OverlapsWith(other *ScheduledSlot) bool {
	return s.startAt.Before(other.endAt) && s.endAt.After(other.startAt)
}

// AIGenerated reports the legacy compatibility flag: true iff the slot
// was produced by the planner or the recommender rather than the user.
func (s *ScheduledSlot) AIGenerated() bool {
	return s.source == SourceAI || s.source == SourceAuto
}

// MarkNotified records that the notification collaborator delivered a
// reminder for this slot.
func (s *ScheduledSlot) MarkNotified() {
	s.notificationSent = true
	s.Touch()
}

// RehydrateScheduledSlot recreates a slot from persisted state.
func RehydrateScheduledSlot(
	id uuid.UUID,
	userID uuid.UUID,
	taskID *uuid.UUID,
	title string,
	startAt, endAt time.Time,
	isBreak bool,
	source SlotSource,
	notificationSent bool,
	createdAt, updatedAt time.Time,
) *ScheduledSlot {
	return &ScheduledSlot{
		BaseEntity:       domain.RehydrateBaseEntity(id, createdAt, updatedAt),
		userID:           userID,
		taskID:           taskID,
		title:            title,
		startAt:          startAt,
		endAt:            endAt,
		isBreak:          isBreak,
		source:           source,
		notificationSent: notificationSent,
	}
}
