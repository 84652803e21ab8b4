package recommend

import (
	"fmt"
	"time"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/planning/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var horizonDays int

// Cmd is the recommend command group
var Cmd = &cobra.Command{
	Use:   "recommend [task-id]",
	Short: "Recommend a time slot for a task",
	Long: `Ask for the best placement of a single task within the coming
days, without changing any plan. The recommendation explains its choice
and lists runner-up slots; confirm one with 'dayflow recommend confirm'.

Examples:
  dayflow recommend 4f6b...
  dayflow recommend 4f6b... --horizon 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecommendSlotHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		decision, err := app.RecommendSlotHandler.Handle(cmd.Context(), queries.RecommendSlotQuery{
			UserID:      app.CurrentUserID,
			TaskID:      taskID,
			HorizonDays: horizonDays,
		})
		if err != nil {
			return fmt.Errorf("failed to recommend a slot: %w", err)
		}

		fmt.Printf("Recommended slot for task %s\n", taskID)
		fmt.Printf("  when:       %s - %s\n",
			decision.Chosen.StartAt.UTC().Format(time.RFC3339),
			decision.Chosen.EndAt.UTC().Format("15:04"))
		fmt.Printf("  fit:        %.2f\n", decision.Chosen.Fit)
		fmt.Printf("  confidence: %.2f\n", decision.Confidence)
		fmt.Printf("  why:        %s\n", decision.Explanation)
		if len(decision.Alternatives) > 0 {
			fmt.Println("  alternatives:")
			for _, alt := range decision.Alternatives {
				fmt.Printf("    %s - %s  (fit %.2f)\n",
					alt.StartAt.UTC().Format(time.RFC3339),
					alt.EndAt.UTC().Format("15:04"),
					alt.Fit)
			}
		}
		fmt.Printf("\nConfirm with:\n  dayflow recommend confirm %s --start %s --end %s\n",
			taskID,
			decision.Chosen.StartAt.UTC().Format(time.RFC3339),
			decision.Chosen.EndAt.UTC().Format(time.RFC3339))
		return nil
	},
}

func init() {
	Cmd.Flags().IntVar(&horizonDays, "horizon", 0, "days to look ahead (default from config)")
	Cmd.AddCommand(confirmCmd)
}
