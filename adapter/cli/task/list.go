package task

import (
	"fmt"
	"time"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/tasks/application/queries"
	"github.com/spf13/cobra"
)

var showAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks.

By default only plannable tasks (pending or scheduled) are shown.

Examples:
  dayflow task list          # Plannable tasks
  dayflow task list --all    # All tasks, including done`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		query := queries.ListTasksQuery{
			UserID:        app.CurrentUserID,
			PlannableOnly: !showAll,
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		fmt.Printf("%-36s  %-30s  %-10s  %-8s  %-6s  %s\n",
			"ID", "TITLE", "STATUS", "PRIORITY", "ENERGY", "DEADLINE")
		for _, t := range tasks {
			title := t.Title
			if len(title) > 30 {
				title = title[:27] + "..."
			}
			deadline := "-"
			if t.Deadline != nil {
				deadline = t.Deadline.UTC().Format(time.RFC3339)
			}
			fmt.Printf("%-36s  %-30s  %-10s  %-8d  %-6s  %s\n",
				t.ID, title, t.Status, t.Priority, t.Energy, deadline)
		}
		fmt.Printf("\n%d task%s\n", len(tasks), plural(len(tasks)))
		return nil
	},
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include done and postponed tasks")
}
