package score

import (
	"fmt"

	"github.com/dayflow/dayflow/adapter/cli"
	analyticsDomain "github.com/dayflow/dayflow/internal/analytics/domain"
	"github.com/dayflow/dayflow/internal/analytics/application/queries"
	"github.com/spf13/cobra"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the score trend and burnout risk",
	Long: `Summarize score movement over the trailing window: the
recency-weighted weekly score, the per-day slope, and a burnout risk
forecast when scores keep falling while days stay packed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetTrendHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		report, err := app.GetTrendHandler.Handle(cmd.Context(), queries.GetTrendQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to compute trend: %w", err)
		}

		fmt.Println("Score trend")
		fmt.Printf("  window:       %d day%s of data\n", report.WindowDays, plural(report.WindowDays))
		fmt.Printf("  weekly score: %.1f\n", report.WeeklyScore)
		fmt.Printf("  slope:        %+.2f points/day\n", report.Slope)
		fmt.Printf("  burnout risk: %s\n", report.Risk)
		fmt.Printf("  confidence:   %.2f\n", report.Confidence)
		if report.Risk != analyticsDomain.RiskNone {
			fmt.Println("\nScores have been falling on consistently packed days. Consider lightening upcoming plans.")
		}
		return nil
	},
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
