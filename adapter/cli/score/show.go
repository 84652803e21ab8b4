package score

import (
	"fmt"

	"github.com/dayflow/dayflow/adapter/cli"
	analyticsDomain "github.com/dayflow/dayflow/internal/analytics/domain"
	"github.com/dayflow/dayflow/internal/analytics/application/queries"
	"github.com/spf13/cobra"
)

var showDay string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the score for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetDailyScoreHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		day, err := parseDayFlag(showDay)
		if err != nil {
			return err
		}

		score, err := app.GetDailyScoreHandler.Handle(cmd.Context(), queries.GetDailyScoreQuery{
			UserID: app.CurrentUserID,
			Day:    day,
		})
		if err != nil {
			return fmt.Errorf("failed to load score: %w", err)
		}
		if score == nil {
			fmt.Printf("No score recorded for %s. Run 'dayflow score compute' first.\n", day.Format("2006-01-02"))
			return nil
		}

		printScore(score)
		return nil
	},
}

func printScore(score *analyticsDomain.DailyScore) {
	fmt.Printf("Score for %s\n", score.Day.Format("2006-01-02"))
	fmt.Printf("  value:       %.1f / 100\n", score.Value)
	fmt.Printf("  completion:  %.0f%%\n", score.CompletionRatio*100)
	fmt.Printf("  penalty:     -%.1f (postponements)\n", score.PostponePenalty)
	fmt.Printf("  utilization: %.0f%%\n", score.EnergyUtilization*100)
	if score.Finalized {
		fmt.Println("  finalized:   yes")
	} else {
		fmt.Println("  finalized:   no (day still in progress)")
	}
}

func init() {
	showCmd.Flags().StringVar(&showDay, "day", "", "day to show (YYYY-MM-DD, default today)")
}
