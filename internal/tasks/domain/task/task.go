package task

import (
	"errors"
	"strings"
	"time"

	"github.com/dayflow/dayflow/internal/shared/domain"
	"github.com/dayflow/dayflow/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrTaskAlreadyDone = errors.New("task is already done")
)

// Status represents the task lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusDone      Status = "done"
	StatusPostponed Status = "postponed"
)

// IsValid returns true for a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusDone, StatusPostponed:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// Task represents a unit of work to be planned into a day.
type Task struct {
	domain.BaseAggregateRoot
	userID        uuid.UUID
	title         string
	description   string
	status        Status
	priority      value_objects.Priority
	duration      value_objects.Duration
	energy        value_objects.EnergyRequirement
	deadline      *time.Time
	postponeCount int
	completedAt   *time.Time
}

// NewTask creates a new pending task.
func NewTask(
	userID uuid.UUID,
	title string,
	priority value_objects.Priority,
	duration value_objects.Duration,
	energy value_objects.EnergyRequirement,
	deadline *time.Time,
) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !priority.IsValid() {
		return nil, value_objects.ErrInvalidPriority
	}
	if duration.IsZero() {
		return nil, value_objects.ErrInvalidDuration
	}
	if !energy.IsValid() {
		return nil, value_objects.ErrInvalidEnergyRequirement
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		status:            StatusPending,
		priority:          priority,
		duration:          duration,
		energy:            energy,
		deadline:          deadline,
	}

	t.AddDomainEvent(NewTaskCreated(t.ID(), t.title, int(t.priority)))

	return t, nil
}

// Getters

func (t *Task) UserID() uuid.UUID                        { return t.userID }
func (t *Task) Title() string                            { return t.title }
func (t *Task) Description() string                      { return t.description }
func (t *Task) Status() Status                           { return t.status }
func (t *Task) Priority() value_objects.Priority         { return t.priority }
func (t *Task) Duration() value_objects.Duration         { return t.duration }
func (t *Task) Energy() value_objects.EnergyRequirement  { return t.energy }
func (t *Task) Deadline() *time.Time                     { return t.deadline }
func (t *Task) PostponeCount() int                       { return t.postponeCount }
func (t *Task) CompletedAt() *time.Time                  { return t.completedAt }
func (t *Task) IsDone() bool                             { return t.status == StatusDone }

// IsPlannable returns true when the task is eligible for allocation.
// Done and postponed tasks never re-enter planning without an explicit
// status change.
func (t *Task) IsPlannable() bool {
	return t.status == StatusPending || t.status == StatusScheduled
}

// SetTitle updates the task title.
func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	t.title = title
	t.Touch()
	return nil
}

// SetDescription updates the task description.
func (t *Task) SetDescription(description string) {
	t.description = strings.TrimSpace(description)
	t.Touch()
}

// SetPriority updates the task priority.
func (t *Task) SetPriority(priority value_objects.Priority) error {
	if !priority.IsValid() {
		return value_objects.ErrInvalidPriority
	}
	t.priority = priority
	t.Touch()
	return nil
}

// SetDuration updates the estimated duration.
func (t *Task) SetDuration(duration value_objects.Duration) error {
	if duration.IsZero() {
		return value_objects.ErrInvalidDuration
	}
	t.duration = duration
	t.Touch()
	return nil
}

// SetEnergy updates the energy requirement.
func (t *Task) SetEnergy(energy value_objects.EnergyRequirement) error {
	if !energy.IsValid() {
		return value_objects.ErrInvalidEnergyRequirement
	}
	t.energy = energy
	t.Touch()
	return nil
}

// SetDeadline updates the deadline. A nil deadline clears it.
func (t *Task) SetDeadline(deadline *time.Time) {
	t.deadline = deadline
	t.Touch()
}

// MarkScheduled records that the planner placed the task into a slot.
func (t *Task) MarkScheduled() error {
	if t.status == StatusDone {
		return ErrTaskAlreadyDone
	}
	if t.status == StatusScheduled {
		return nil // Idempotent
	}
	t.status = StatusScheduled
	t.Touch()
	t.AddDomainEvent(NewTaskScheduled(t.ID()))
	return nil
}

// MarkPending returns a previously scheduled task to the backlog, e.g.
// when a plan regeneration no longer places it.
func (t *Task) MarkPending() error {
	if t.status == StatusDone {
		return ErrTaskAlreadyDone
	}
	t.status = StatusPending
	t.Touch()
	return nil
}

// Complete marks the task as done.
func (t *Task) Complete() error {
	if t.status == StatusDone {
		return ErrTaskAlreadyDone
	}

	now := time.Now().UTC()
	t.status = StatusDone
	t.completedAt = &now
	t.Touch()

	t.AddDomainEvent(NewTaskCompleted(t.ID()))

	return nil
}

// Postpone marks the task as postponed and increments the postpone count.
// This is the only place the count changes; planning never touches it.
func (t *Task) Postpone() error {
	if t.status == StatusDone {
		return ErrTaskAlreadyDone
	}

	t.status = StatusPostponed
	t.postponeCount++
	t.Touch()

	t.AddDomainEvent(NewTaskPostponed(t.ID(), t.postponeCount))

	return nil
}

// Reopen returns a postponed task to the pending backlog.
func (t *Task) Reopen() error {
	if t.status == StatusDone {
		return ErrTaskAlreadyDone
	}
	t.status = StatusPending
	t.Touch()
	return nil
}

// RehydrateTask recreates a task from persisted state.
func RehydrateTask(
	id uuid.UUID,
	userID uuid.UUID,
	title, description string,
	status Status,
	priority value_objects.Priority,
	duration value_objects.Duration,
	energy value_objects.EnergyRequirement,
	deadline *time.Time,
	postponeCount int,
	completedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *Task {
	baseEntity := domain.RehydrateBaseEntity(id, createdAt, updatedAt)
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(baseEntity, version),
		userID:            userID,
		title:             title,
		description:       description,
		status:            status,
		priority:          priority,
		duration:          duration,
		energy:            energy,
		deadline:          deadline,
		postponeCount:     postponeCount,
		completedAt:       completedAt,
	}
}
