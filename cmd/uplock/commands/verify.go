package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/uplock/internal/app"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every requirement in the upstream lock file resolves within it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Verify(cmd.Context(), app.VerifyOptions{
				LockOptions: lockOptions(cmd),
				Output:      cmd.OutOrStdout(),
			})
		},
	}
}
