package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/uplock/internal/app"
)

func (c *CLI) newOverlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlay [pool-snapshot]",
		Short: "Apply the upstream lock file to a pool snapshot",
		Long: "Reads a pool snapshot (YAML or JSON, '-' for stdin), pins every package known to the\n" +
			"upstream lock file and prints the resulting candidate list.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			poolPath := "-"
			if len(args) == 1 {
				poolPath = args[0]
			}
			format, _ := cmd.Flags().GetString("format")
			return c.app.Overlay(cmd.Context(), app.OverlayOptions{
				LockOptions: lockOptions(cmd),
				PoolPath:    poolPath,
				Format:      format,
				Output:      cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringP("format", "o", "text", "Report format: text, json or yaml")
	return cmd
}
