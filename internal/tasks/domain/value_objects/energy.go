package value_objects

import (
	"errors"
	"strings"
)

// EnergyRequirement represents how much focus/energy a task demands.
type EnergyRequirement string

const (
	EnergyLow    EnergyRequirement = "low"
	EnergyMedium EnergyRequirement = "medium"
	EnergyHigh   EnergyRequirement = "high"
)

var ErrInvalidEnergyRequirement = errors.New("invalid energy requirement")

// ParseEnergyRequirement creates an EnergyRequirement from a string.
func ParseEnergyRequirement(s string) (EnergyRequirement, error) {
	switch EnergyRequirement(strings.ToLower(s)) {
	case EnergyLow:
		return EnergyLow, nil
	case EnergyMedium:
		return EnergyMedium, nil
	case EnergyHigh:
		return EnergyHigh, nil
	default:
		return "", ErrInvalidEnergyRequirement
	}
}

// Threshold returns the minimum energy level on the [0,1] curve at which
// the requirement is fully satisfied.
func (e EnergyRequirement) Threshold() float64 {
	switch e {
	case EnergyHigh:
		return 0.7
	case EnergyMedium:
		return 0.4
	default:
		return 0.1
	}
}

// IsValid returns true for a known requirement level.
func (e EnergyRequirement) IsValid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (e EnergyRequirement) String() string {
	return string(e)
}
