package score

import (
	"fmt"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/analytics/application/commands"
	"github.com/spf13/cobra"
)

var computeDay string

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute the score for a day",
	Long: `Compute the plan-quality score for a day from its plan and
task outcomes. Scores for elapsed days are final; the current day can
be recomputed as tasks complete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ComputeDailyScoreHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		day, err := parseDayFlag(computeDay)
		if err != nil {
			return err
		}

		score, err := app.ComputeDailyScoreHandler.Handle(cmd.Context(), commands.ComputeDailyScoreCommand{
			UserID: app.CurrentUserID,
			Day:    day,
		})
		if err != nil {
			return fmt.Errorf("failed to compute score: %w", err)
		}

		printScore(score)
		return nil
	},
}

func init() {
	computeCmd.Flags().StringVar(&computeDay, "day", "", "day to score (YYYY-MM-DD, default today)")
}
