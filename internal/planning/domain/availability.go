package domain

import (
	"errors"
	"time"
)

// ErrEmptyAvailability is returned when a planning run has no free
// window of at least the minimum slot duration left in its horizon.
var ErrEmptyAvailability = errors.New("no free window available in the planning horizon")

// Window is a half-open free interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether the interval [start, start+d) fits inside
// the window.
func (w Window) Contains(start time.Time, d time.Duration) bool {
	return !start.Before(w.Start) && !start.Add(d).After(w.End)
}
