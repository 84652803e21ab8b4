package plan

import (
	"fmt"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/planning/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var removeSlotDay string

var removeSlotCmd = &cobra.Command{
	Use:   "remove-slot [slot-id]",
	Short: "Remove a manual slot from the plan",
	Long: `Remove a manually pinned slot. Generated slots cannot be
removed this way; rerun plan generation instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RemoveManualSlotHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		slotID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid slot ID: %w", err)
		}
		day, err := parseDayFlag(removeSlotDay)
		if err != nil {
			return err
		}

		err = app.RemoveManualSlotHandler.Handle(cmd.Context(), commands.RemoveManualSlotCommand{
			UserID: app.CurrentUserID,
			Day:    day,
			SlotID: slotID,
		})
		if err != nil {
			return fmt.Errorf("failed to remove slot: %w", err)
		}

		fmt.Printf("Slot removed: %s\n", slotID)
		return nil
	},
}

func init() {
	removeSlotCmd.Flags().StringVar(&removeSlotDay, "day", "", "day the slot is on (YYYY-MM-DD, default today)")
}
