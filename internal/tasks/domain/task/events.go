package task

import (
	"github.com/dayflow/dayflow/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated   = "core.task.created"
	RoutingKeyScheduled = "core.task.scheduled"
	RoutingKeyCompleted = "core.task.completed"
	RoutingKeyPostponed = "core.task.postponed"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Title    string `json:"title"`
	Priority int    `json:"priority"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(taskID uuid.UUID, title string, priority int) TaskCreated {
	return TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated),
		Title:     title,
		Priority:  priority,
	}
}

// TaskScheduled is emitted when the planner places a task into a slot.
type TaskScheduled struct {
	domain.BaseEvent
}

// NewTaskScheduled creates a TaskScheduled event.
func NewTaskScheduled(taskID uuid.UUID) TaskScheduled {
	return TaskScheduled{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyScheduled),
	}
}

// TaskCompleted is emitted when a task is marked done.
type TaskCompleted struct {
	domain.BaseEvent
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(taskID uuid.UUID) TaskCompleted {
	return TaskCompleted{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCompleted),
	}
}

// TaskPostponed is emitted when a task is explicitly postponed.
type TaskPostponed struct {
	domain.BaseEvent
	PostponeCount int `json:"postpone_count"`
}

// NewTaskPostponed creates a TaskPostponed event.
func NewTaskPostponed(taskID uuid.UUID, postponeCount int) TaskPostponed {
	return TaskPostponed{
		BaseEvent:     domain.NewBaseEvent(taskID, AggregateType, RoutingKeyPostponed),
		PostponeCount: postponeCount,
	}
}
