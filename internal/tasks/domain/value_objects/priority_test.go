package value_objects_test

import (
	"testing"

	"github.com/dayflow/dayflow/internal/tasks/domain/value_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriority(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected value_objects.Priority
		wantErr  bool
	}{
		{"lowest", 1, value_objects.PriorityLowest, false},
		{"low", 2, value_objects.PriorityLow, false},
		{"medium", 3, value_objects.PriorityMedium, false},
		{"high", 4, value_objects.PriorityHigh, false},
		{"critical", 5, value_objects.PriorityCritical, false},
		{"zero", 0, 0, true},
		{"negative", -1, 0, true},
		{"too high", 6, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := value_objects.NewPriority(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, value_objects.ErrInvalidPriority)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestPriority_Weight(t *testing.T) {
	assert.Equal(t, 1.0, value_objects.PriorityLowest.Weight())
	assert.Equal(t, 3.0, value_objects.PriorityMedium.Weight())
	assert.Equal(t, 5.0, value_objects.PriorityCritical.Weight())
}

func TestPriority_IsValid(t *testing.T) {
	assert.True(t, value_objects.PriorityLowest.IsValid())
	assert.True(t, value_objects.PriorityCritical.IsValid())
	assert.False(t, value_objects.Priority(0).IsValid())
	assert.False(t, value_objects.Priority(6).IsValid())
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "3", value_objects.PriorityMedium.String())
	assert.Equal(t, "5", value_objects.PriorityCritical.String())
}
