// Package commands implements the CLI commands for uplock.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/uplock/internal/app"
	"go.trai.ch/uplock/internal/build"
)

// Application is the set of operations the CLI exposes.
type Application interface {
	Overlay(ctx context.Context, opts app.OverlayOptions) error
	Verify(ctx context.Context, opts app.VerifyOptions) error
	Inspect(ctx context.Context, names []string, opts app.InspectOptions) error
}

// CLI represents the command line interface for uplock.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "uplock",
		Short:         "Pin a resolution pool to the versions of an upstream lock file",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("lock-file", "l", "", "Upstream lock file path or URL (overrides COMPOSER_UPSTREAM_LOCK_FILE)")
	rootCmd.PersistentFlags().Bool("allow-http", false, "Allow fetching the upstream lock file over the network")
	rootCmd.PersistentFlags().Bool("offline", false, "Only use the cached copy of a remote upstream lock file")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newOverlayCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error writers for the root command. Used for testing.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

func lockOptions(cmd *cobra.Command) app.LockOptions {
	lockFile, _ := cmd.Flags().GetString("lock-file")
	allowHTTP, _ := cmd.Flags().GetBool("allow-http")
	offline, _ := cmd.Flags().GetBool("offline")
	return app.LockOptions{
		LockFile:  lockFile,
		AllowHTTP: allowHTTP,
		Offline:   offline,
	}
}
