package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/uplock/internal/app"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <package>...",
		Short: "Show what the upstream lock file records for packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Inspect(cmd.Context(), args, app.InspectOptions{
				LockOptions: lockOptions(cmd),
				Output:      cmd.OutOrStdout(),
			})
		},
	}
}
