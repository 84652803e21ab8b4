package plan

import (
	"fmt"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/planning/application/queries"
	"github.com/spf13/cobra"
)

var showDay string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetDayPlanHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		day, err := parseDayFlag(showDay)
		if err != nil {
			return err
		}

		plan, err := app.GetDayPlanHandler.Handle(cmd.Context(), queries.GetDayPlanQuery{
			UserID: app.CurrentUserID,
			Day:    day,
		})
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}

		fmt.Printf("Plan for %s\n", day.Format("2006-01-02"))
		if len(plan.Slots) == 0 {
			fmt.Println("  (empty)")
			return nil
		}
		for _, slot := range plan.Slots {
			kind := slot.Source
			if slot.IsBreak {
				kind = "break"
			}
			fmt.Printf("  %s - %s  %-30s  [%s]  %s\n",
				slot.StartAt.UTC().Format("15:04"),
				slot.EndAt.UTC().Format("15:04"),
				slot.Title, kind, slot.ID)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showDay, "day", "", "day to show (YYYY-MM-DD, default today)")
}
