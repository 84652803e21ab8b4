package services

import (
	"errors"
	"sort"
	"time"

	planning "github.com/dayflow/dayflow/internal/planning/domain"
)

// WorkSpan bounds the plannable part of a day in local wall-clock time.
type WorkSpan struct {
	Start time.Duration // offset from midnight, e.g. 8h
	End   time.Duration // offset from midnight, e.g. 18h
}

// DefaultWorkSpan is the 08:00 to 18:00 working day.
func DefaultWorkSpan() WorkSpan {
	return WorkSpan{Start: 8 * time.Hour, End: 18 * time.Hour}
}

// AvailabilityResolver turns a day's committed slots into the list of
// free windows the planner can fill.
type AvailabilityResolver struct {
	span WorkSpan
}

// NewAvailabilityResolver creates a resolver for the given work span.
func NewAvailabilityResolver(span WorkSpan) *AvailabilityResolver {
	return &AvailabilityResolver{span: span}
}

// ResolveDay subtracts busy slots from the day's work span and returns
// the remaining free windows, sorted, with sub-granularity fragments
// dropped. Partially started days are clipped at now. When nothing at
// or above the granularity is left it returns ErrEmptyAvailability.
func (r *AvailabilityResolver) ResolveDay(
	day time.Time,
	busy []*planning.ScheduledSlot,
	now time.Time,
) ([]planning.Window, error) {
	y, m, d := day.UTC().Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	start := midnight.Add(r.span.Start)
	end := midnight.Add(r.span.End)
	if now.After(start) {
		start = now
	}
	if !end.After(start) {
		return nil, planning.ErrEmptyAvailability
	}

	intervals := make([]planning.Window, 0, len(busy))
	for _, s := range busy {
		if !s.EndAt().After(start) || !end.After(s.StartAt()) {
			continue
		}
		intervals = append(intervals, planning.Window{Start: s.StartAt(), End: s.EndAt()})
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	var free []planning.Window
	cursor := start
	for _, iv := range intervals {
		if iv.Start.After(cursor) {
			free = appendWindow(free, planning.Window{Start: cursor, End: iv.Start})
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}
	if end.After(cursor) {
		free = appendWindow(free, planning.Window{Start: cursor, End: end})
	}
	if len(free) == 0 {
		return nil, planning.ErrEmptyAvailability
	}
	return free, nil
}

// ResolveHorizon resolves free windows for consecutive days starting at
// the day containing now.
func (r *AvailabilityResolver) ResolveHorizon(
	busyByDay map[time.Time][]*planning.ScheduledSlot,
	now time.Time,
	days int,
) ([]planning.Window, error) {
	var all []planning.Window
	y, m, d := now.UTC().Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		day := first.Add(time.Duration(i) * 24 * time.Hour)
		windows, err := r.ResolveDay(day, busyByDay[day], now)
		if err != nil {
			if errors.Is(err, planning.ErrEmptyAvailability) {
				continue
			}
			return nil, err
		}
		all = append(all, windows...)
	}
	if len(all) == 0 {
		return nil, planning.ErrEmptyAvailability
	}
	return all, nil
}

func appendWindow(windows []planning.Window, w planning.Window) []planning.Window {
	if w.Duration() < planning.MinSlotDuration {
		return windows
	}
	return append(windows, w)
}
