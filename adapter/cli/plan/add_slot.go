package plan

import (
	"fmt"
	"time"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/planning/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	slotStart  string
	slotEnd    string
	slotTaskID string
	slotBreak  bool
)

var addSlotCmd = &cobra.Command{
	Use:   "add-slot [title]",
	Short: "Pin a manual slot into the plan",
	Long: `Pin a fixed commitment into the day's plan. Manual slots are
never moved or removed by plan generation.

Examples:
  dayflow plan add-slot "Team standup" --start 2026-09-01T09:00:00Z --end 2026-09-01T09:15:00Z
  dayflow plan add-slot "Lunch" --start ... --end ... --break`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddManualSlotHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		start, err := time.Parse(time.RFC3339, slotStart)
		if err != nil {
			return fmt.Errorf("invalid --start (use RFC3339): %w", err)
		}
		end, err := time.Parse(time.RFC3339, slotEnd)
		if err != nil {
			return fmt.Errorf("invalid --end (use RFC3339): %w", err)
		}

		addCmd := commands.AddManualSlotCommand{
			UserID:  app.CurrentUserID,
			Title:   args[0],
			StartAt: start.UTC(),
			EndAt:   end.UTC(),
			IsBreak: slotBreak,
		}
		if slotTaskID != "" {
			taskID, err := uuid.Parse(slotTaskID)
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}
			addCmd.TaskID = &taskID
		}

		slotID, err := app.AddManualSlotHandler.Handle(cmd.Context(), addCmd)
		if err != nil {
			return fmt.Errorf("failed to add slot: %w", err)
		}

		fmt.Printf("Slot added: %s\n", slotID)
		fmt.Printf("  %s - %s  %s\n", start.UTC().Format("15:04"), end.UTC().Format("15:04"), args[0])
		return nil
	},
}

func init() {
	addSlotCmd.Flags().StringVar(&slotStart, "start", "", "slot start (RFC3339, required)")
	addSlotCmd.Flags().StringVar(&slotEnd, "end", "", "slot end (RFC3339, required)")
	addSlotCmd.Flags().StringVar(&slotTaskID, "task", "", "task this slot works on")
	addSlotCmd.Flags().BoolVar(&slotBreak, "break", false, "mark the slot as a break")
	_ = addSlotCmd.MarkFlagRequired("start")
	_ = addSlotCmd.MarkFlagRequired("end")
}
