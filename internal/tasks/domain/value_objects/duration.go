package value_objects

import (
	"errors"
	"fmt"
	"time"
)

// Duration represents an estimated task duration in whole minutes.
type Duration struct {
	minutes int
}

var ErrInvalidDuration = errors.New("estimated duration must be positive")

// NewDuration creates a Duration from minutes.
func NewDuration(minutes int) (Duration, error) {
	if minutes <= 0 {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{minutes: minutes}, nil
}

// Minutes returns the duration in minutes.
func (d Duration) Minutes() int {
	return d.minutes
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.minutes) * time.Minute
}

// IsZero returns true when no duration has been set.
func (d Duration) IsZero() bool {
	return d.minutes == 0
}

// String renders the duration as "90m".
func (d Duration) String() string {
	return fmt.Sprintf("%dm", d.minutes)
}
