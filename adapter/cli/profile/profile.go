package profile

import (
	"github.com/spf13/cobra"
)

// Cmd is the profile command group
var Cmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your energy profile",
	Long:  `Set the hourly energy curve the planner uses to match demanding tasks to strong hours.`,
}

func init() {
	Cmd.AddCommand(setCmd)
}
