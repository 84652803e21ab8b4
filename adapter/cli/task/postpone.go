package task

import (
	"fmt"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/tasks/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var postponeCmd = &cobra.Command{
	Use:   "postpone [task-id]",
	Short: "Push a task off to another day",
	Long: `Mark a task as postponed. Each postponement raises the task's
planning score, so chronically deferred work surfaces sooner instead of
sinking to the bottom of the backlog.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.PostponeTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		err = app.PostponeTaskHandler.Handle(cmd.Context(), commands.PostponeTaskCommand{
			UserID: app.CurrentUserID,
			TaskID: taskID,
		})
		if err != nil {
			return fmt.Errorf("failed to postpone task: %w", err)
		}

		fmt.Printf("Task postponed: %s\n", taskID)
		return nil
	},
}
