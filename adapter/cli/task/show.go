package task

import (
	"fmt"
	"time"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/tasks/application/queries"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		t, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{TaskID: taskID})
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}

		fmt.Printf("Task %s\n", t.ID)
		fmt.Printf("  title:          %s\n", t.Title)
		if t.Description != "" {
			fmt.Printf("  description:    %s\n", t.Description)
		}
		fmt.Printf("  status:         %s\n", t.Status)
		fmt.Printf("  priority:       %d\n", t.Priority)
		fmt.Printf("  duration:       %d minutes\n", t.DurationMinutes)
		fmt.Printf("  energy:         %s\n", t.Energy)
		if t.Deadline != nil {
			fmt.Printf("  deadline:       %s\n", t.Deadline.UTC().Format(time.RFC3339))
		}
		fmt.Printf("  postponed:      %d time%s\n", t.PostponeCount, plural(t.PostponeCount))
		if t.CompletedAt != nil {
			fmt.Printf("  completed at:   %s\n", t.CompletedAt.UTC().Format(time.RFC3339))
		}
		return nil
	},
}
