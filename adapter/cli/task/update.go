package task

import (
	"fmt"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/tasks/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateDescription string
	updatePriority    int
	updateDuration    int
	updateEnergy      string
	updateDeadline    string
	clearDeadline     bool
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Edit task fields",
	Long: `Edit one or more task fields. Only flags that are set change
anything.

Examples:
  dayflow task update 4f6b... --title "New title"
  dayflow task update 4f6b... -p 5 -d 45
  dayflow task update 4f6b... --clear-deadline`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		update := commands.UpdateTaskCommand{
			TaskID:        taskID,
			ClearDeadline: clearDeadline,
		}
		if cmd.Flags().Changed("title") {
			update.Title = &updateTitle
		}
		if cmd.Flags().Changed("description") {
			update.Description = &updateDescription
		}
		if cmd.Flags().Changed("priority") {
			update.Priority = &updatePriority
		}
		if cmd.Flags().Changed("duration") {
			update.DurationMinutes = &updateDuration
		}
		if cmd.Flags().Changed("energy") {
			update.Energy = &updateEnergy
		}
		if updateDeadline != "" {
			parsed, err := parseTimeFlag(updateDeadline)
			if err != nil {
				return fmt.Errorf("invalid deadline (use RFC3339 or YYYY-MM-DD): %w", err)
			}
			update.Deadline = &parsed
		}

		if err := app.UpdateTaskHandler.Handle(cmd.Context(), update); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		fmt.Printf("Task updated: %s\n", taskID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().IntVarP(&updatePriority, "priority", "p", 0, "new priority (1-5)")
	updateCmd.Flags().IntVarP(&updateDuration, "duration", "d", 0, "new duration in minutes")
	updateCmd.Flags().StringVarP(&updateEnergy, "energy", "e", "", "new energy requirement (low, medium, high)")
	updateCmd.Flags().StringVar(&updateDeadline, "deadline", "", "new deadline (RFC3339 or YYYY-MM-DD)")
	updateCmd.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "remove the deadline")
}
