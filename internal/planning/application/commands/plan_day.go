package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dayflow/dayflow/internal/planning/application/services"
	planningDomain "github.com/dayflow/dayflow/internal/planning/domain"
	sharedApplication "github.com/dayflow/dayflow/internal/shared/application"
	"github.com/dayflow/dayflow/internal/shared/infrastructure/outbox"
	taskDomain "github.com/dayflow/dayflow/internal/tasks/domain/task"
	"github.com/google/uuid"
)

// PlanDayCommand requests a full regeneration of a user's day plan.
type PlanDayCommand struct {
	UserID uuid.UUID
	Day    time.Time
	Now    time.Time // zero means wall clock
}

// PlanDayResult summarizes a planning run.
type PlanDayResult struct {
	Day       time.Time
	Scheduled int
	Breaks    int
	Unplaced  []uuid.UUID
	Overload  services.OverloadReport
}

// planLocks serializes planning runs per user+day so two concurrent
// regenerations cannot interleave their replace of generated slots.
type planLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPlanLocks() *planLocks {
	return &planLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *planLocks) acquire(userID uuid.UUID, day time.Time) func() {
	key := fmt.Sprintf("%s:%s", userID, day.Format("2006-01-02"))
	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[key] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// PlanDayHandler handles the PlanDayCommand.
type PlanDayHandler struct {
	taskRepo    taskDomain.Repository
	planRepo    planningDomain.PlanRepository
	profileRepo planningDomain.EnergyProfileRepository
	resolver    *services.AvailabilityResolver
	engine      *services.PlanningEngine
	outboxRepo  outbox.Repository
	uow         sharedApplication.UnitOfWork
	locks       *planLocks
}

// NewPlanDayHandler creates a new handler.
func NewPlanDayHandler(
	taskRepo taskDomain.Repository,
	planRepo planningDomain.PlanRepository,
	profileRepo planningDomain.EnergyProfileRepository,
	resolver *services.AvailabilityResolver,
	engine *services.PlanningEngine,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *PlanDayHandler {
	return &PlanDayHandler{
		taskRepo:    taskRepo,
		planRepo:    planRepo,
		profileRepo: profileRepo,
		resolver:    resolver,
		engine:      engine,
		outboxRepo:  outboxRepo,
		uow:         uow,
		locks:       newPlanLocks(),
	}
}

// Handle executes the command.
func (h *PlanDayHandler) Handle(ctx context.Context, cmd PlanDayCommand) (*PlanDayResult, error) {
	now := cmd.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	day := time.Date(cmd.Day.Year(), cmd.Day.Month(), cmd.Day.Day(), 0, 0, 0, 0, time.UTC)

	release := h.locks.acquire(cmd.UserID, day)
	defer release()

	tasks, err := h.taskRepo.FindPlannable(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	profile, err := h.profileRepo.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = planningDomain.DefaultEnergyProfile(cmd.UserID)
	}

	plan, err := h.planRepo.FindByUserAndDay(ctx, cmd.UserID, day)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		plan = planningDomain.NewDayPlan(cmd.UserID, day)
	}

	// A day with no free window is not a failure: the run proceeds
	// with zero windows and every task lands in Unplaced.
	windows, err := h.resolver.ResolveDay(day, plan.ManualSlots(), now)
	if err != nil && !errors.Is(err, planningDomain.ErrEmptyAvailability) {
		return nil, err
	}

	plannable := make([]services.PlannableTask, 0, len(tasks))
	byID := make(map[uuid.UUID]*taskDomain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID()] = t
		plannable = append(plannable, services.PlannableTask{
			ID:            t.ID(),
			Title:         t.Title(),
			Priority:      t.Priority(),
			Duration:      t.Duration(),
			Energy:        t.Energy(),
			Deadline:      t.Deadline(),
			PostponeCount: t.PostponeCount(),
		})
	}

	planned, err := h.engine.Plan(plannable, windows, profile, now)
	if err != nil {
		return nil, err
	}

	result := &PlanDayResult{Day: day, Unplaced: planned.Unplaced, Overload: planned.Overload}

	slots := make([]*planningDomain.ScheduledSlot, 0, len(planned.Slots))
	for _, ps := range planned.Slots {
		title := ps.Title
		if ps.IsBreak {
			title = "Break"
			result.Breaks++
		} else {
			result.Scheduled++
		}
		slot, err := planningDomain.NewScheduledSlot(
			cmd.UserID, ps.TaskID, title, ps.StartAt, ps.EndAt, ps.IsBreak, planningDomain.SourceAuto)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if err := plan.ReplaceGenerated(slots); err != nil {
		return nil, err
	}

	// Placed tasks move to scheduled; previously scheduled tasks that
	// fell out of the plan drop back to pending. Postponement is never
	// touched here.
	placed := make(map[uuid.UUID]bool, len(planned.Slots))
	for _, ps := range planned.Slots {
		if ps.TaskID != nil {
			placed[*ps.TaskID] = true
		}
	}
	var touched []*taskDomain.Task
	for id, t := range byID {
		switch {
		case placed[id] && t.Status() != taskDomain.StatusScheduled:
			if err := t.MarkScheduled(); err != nil {
				return nil, err
			}
			touched = append(touched, t)
		case !placed[id] && t.Status() == taskDomain.StatusScheduled:
			if err := t.MarkPending(); err != nil {
				return nil, err
			}
			touched = append(touched, t)
		}
	}

	metadata := sharedApplication.NewEventMetadata(cmd.UserID)

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(ctx context.Context) error {
		if err := h.planRepo.Save(ctx, plan); err != nil {
			return err
		}
		for _, t := range touched {
			if err := h.taskRepo.Save(ctx, t); err != nil {
				return err
			}
		}

		events := plan.DomainEvents()
		for _, t := range touched {
			events = append(events, t.DomainEvents()...)
		}
		sharedApplication.ApplyEventMetadata(events, metadata)

		msgs := make([]*outbox.Message, 0, len(events))
		for _, event := range events {
			msg, err := outbox.NewMessage(event)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		if len(msgs) == 0 {
			return nil
		}
		return h.outboxRepo.SaveBatch(ctx, msgs)
	})
	if err != nil {
		return nil, err
	}

	plan.ClearDomainEvents()
	for _, t := range touched {
		t.ClearDomainEvents()
	}
	return result, nil
}
