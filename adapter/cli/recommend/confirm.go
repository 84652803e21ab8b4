package recommend

import (
	"fmt"
	"time"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/planning/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	confirmStart string
	confirmEnd   string
)

var confirmCmd = &cobra.Command{
	Use:   "confirm [task-id]",
	Short: "Accept a recommended slot",
	Long: `Place a task at a recommended time. The slot lands in the
day's plan marked as AI-placed and the task is marked scheduled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ConfirmRecommendationHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}
		start, err := time.Parse(time.RFC3339, confirmStart)
		if err != nil {
			return fmt.Errorf("invalid --start (use RFC3339): %w", err)
		}
		end, err := time.Parse(time.RFC3339, confirmEnd)
		if err != nil {
			return fmt.Errorf("invalid --end (use RFC3339): %w", err)
		}

		slotID, err := app.ConfirmRecommendationHandler.Handle(cmd.Context(), commands.ConfirmRecommendationCommand{
			UserID:  app.CurrentUserID,
			TaskID:  taskID,
			StartAt: start.UTC(),
			EndAt:   end.UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to confirm recommendation: %w", err)
		}

		fmt.Printf("Slot confirmed: %s\n", slotID)
		fmt.Printf("  %s - %s\n", start.UTC().Format(time.RFC3339), end.UTC().Format("15:04"))
		return nil
	},
}

func init() {
	confirmCmd.Flags().StringVar(&confirmStart, "start", "", "slot start (RFC3339, required)")
	confirmCmd.Flags().StringVar(&confirmEnd, "end", "", "slot end (RFC3339, required)")
	_ = confirmCmd.MarkFlagRequired("start")
	_ = confirmCmd.MarkFlagRequired("end")
}
