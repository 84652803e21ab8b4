package score

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Cmd is the score command group
var Cmd = &cobra.Command{
	Use:   "score",
	Short: "Plan-quality scores and trends",
	Long:  `Compute and inspect daily plan-quality scores, score history, and burnout trends.`,
}

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
	Cmd.AddCommand(computeCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(historyCmd)
	Cmd.AddCommand(trendCmd)
}
