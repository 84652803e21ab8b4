package plan

import (
	"fmt"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var generateDay string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the plan for a day",
	Long: `Score all plannable tasks and fit them into the day's free
windows. Manual slots stay put; previously generated slots are replaced
wholesale, so rerunning on unchanged input produces the same plan.

Examples:
  dayflow plan generate                 # Plan today
  dayflow plan generate --day 2026-09-01`,
	Aliases: []string{"gen"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.PlanDayHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		day, err := parseDayFlag(generateDay)
		if err != nil {
			return err
		}

		result, err := app.PlanDayHandler.Handle(cmd.Context(), commands.PlanDayCommand{
			UserID: app.CurrentUserID,
			Day:    day,
		})
		if err != nil {
			return fmt.Errorf("failed to generate plan: %w", err)
		}

		fmt.Printf("Plan for %s\n", result.Day.Format("2006-01-02"))
		fmt.Printf("  scheduled: %d task slots, %d breaks\n", result.Scheduled, result.Breaks)
		if result.Overload.Overloaded {
			fmt.Printf("  overloaded: %dm of tasks for %dm of free time (%dm over)\n",
				result.Overload.TaskMinutes, result.Overload.AvailableMinutes, result.Overload.ExcessMinutes)
		}
		if len(result.Unplaced) > 0 {
			fmt.Printf("  unplaced:  %d task(s) did not fit:\n", len(result.Unplaced))
			for _, id := range result.Unplaced {
				fmt.Printf("    %s\n", id)
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateDay, "day", "", "day to plan (YYYY-MM-DD, default today)")
}
