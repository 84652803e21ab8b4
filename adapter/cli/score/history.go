package score

import (
	"fmt"
	"time"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/analytics/application/queries"
	"github.com/spf13/cobra"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent daily scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetScoreHistoryHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		now := time.Now().UTC()
		to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
		from := to.AddDate(0, 0, -historyDays)

		scores, err := app.GetScoreHistoryHandler.Handle(cmd.Context(), queries.GetScoreHistoryQuery{
			UserID: app.CurrentUserID,
			From:   from,
			To:     to,
		})
		if err != nil {
			return fmt.Errorf("failed to load score history: %w", err)
		}

		if len(scores) == 0 {
			fmt.Println("No scores recorded yet.")
			return nil
		}

		fmt.Printf("%-12s  %-7s  %-11s  %-9s  %s\n", "DAY", "SCORE", "COMPLETION", "PENALTY", "FINAL")
		for _, s := range scores {
			final := ""
			if s.Finalized {
				final = "yes"
			}
			fmt.Printf("%-12s  %-7.1f  %-11s  %-9.1f  %s\n",
				s.Day.Format("2006-01-02"), s.Value,
				fmt.Sprintf("%.0f%%", s.CompletionRatio*100),
				s.PostponePenalty, final)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 14, "how many days back to list")
}
