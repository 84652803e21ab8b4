package plan

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Cmd is the plan command group
var Cmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and inspect day plans",
	Long:  `Generate a day plan from your task backlog, view it, and pin or remove manual slots.`,
}

// parseDayFlag reads a YYYY-MM-DD day, defaulting to today UTC.
func parseDayFlag(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day format (use YYYY-MM-DD): %w", err)
	}
	return day.UTC(), nil
}

func init() {
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(addSlotCmd)
	Cmd.AddCommand(removeSlotCmd)
}
