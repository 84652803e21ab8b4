package value_objects

import (
	"errors"
	"strconv"
)

// Priority represents task importance on a 1-5 scale, 5 being the highest.
type Priority int

const (
	PriorityLowest   Priority = 1
	PriorityLow      Priority = 2
	PriorityMedium   Priority = 3
	PriorityHigh     Priority = 4
	PriorityCritical Priority = 5
)

var ErrInvalidPriority = errors.New("priority must be between 1 and 5")

// NewPriority creates a Priority from an integer.
func NewPriority(value int) (Priority, error) {
	p := Priority(value)
	if !p.IsValid() {
		return 0, ErrInvalidPriority
	}
	return p, nil
}

// IsValid returns true if the priority is within the 1-5 range.
func (p Priority) IsValid() bool {
	return p >= PriorityLowest && p <= PriorityCritical
}

// Weight returns the numeric weight used by scoring.
func (p Priority) Weight() float64 {
	return float64(p)
}

// String returns the numeric representation of the priority.
func (p Priority) String() string {
	return strconv.Itoa(int(p))
}
