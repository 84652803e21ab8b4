package task

import (
	"fmt"
	"time"

	"github.com/dayflow/dayflow/adapter/cli"
	"github.com/dayflow/dayflow/internal/tasks/application/commands"
	"github.com/spf13/cobra"
)

var (
	priority    int
	duration    int
	energy      string
	description string
	deadline    string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a new task with a title and optional properties.

Examples:
  dayflow task create "Write quarterly report"
  dayflow task create "Review PR" -p 4 -d 30 -e high
  dayflow task create "File expenses" --deadline 2026-09-01T17:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		createCmd := commands.CreateTaskCommand{
			UserID:          app.CurrentUserID,
			Title:           args[0],
			Description:     description,
			Priority:        priority,
			DurationMinutes: duration,
			Energy:          energy,
		}

		if deadline != "" {
			parsed, err := parseTimeFlag(deadline)
			if err != nil {
				return fmt.Errorf("invalid deadline (use RFC3339 or YYYY-MM-DD): %w", err)
			}
			createCmd.Deadline = &parsed
		}

		taskID, err := app.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		fmt.Printf("Task created: %s\n", taskID)
		fmt.Printf("  title: %s\n", args[0])
		fmt.Printf("  priority: %d\n", priority)
		fmt.Printf("  duration: %d minutes\n", duration)
		fmt.Printf("  energy: %s\n", energy)
		return nil
	},
}

// parseTimeFlag accepts an RFC3339 timestamp or a bare date, which is
// read as end of that day UTC.
func parseTimeFlag(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(24*time.Hour - time.Second).UTC(), nil
}

func init() {
	createCmd.Flags().IntVarP(&priority, "priority", "p", 3, "task priority (1-5)")
	createCmd.Flags().IntVarP(&duration, "duration", "d", 30, "estimated duration in minutes")
	createCmd.Flags().StringVarP(&energy, "energy", "e", "medium", "energy requirement (low, medium, high)")
	createCmd.Flags().StringVar(&description, "description", "", "task description")
	createCmd.Flags().StringVar(&deadline, "deadline", "", "deadline (RFC3339 or YYYY-MM-DD)")
}
