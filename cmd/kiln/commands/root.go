// Package commands implements the kiln command tree.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/build"
)

// Application is the surface the commands drive. *app.App satisfies it; the
// command tests substitute a hand-rolled double.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// CLI is the assembled command tree.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// New assembles the command tree around a.
func New(a Application) *CLI {
	c := &CLI{
		app:     a,
		rootCmd: newRootCmd(),
	}

	c.rootCmd.AddCommand(
		c.newBuildCmd(),
		c.newWatchCmd(),
		c.newCleanCmd(),
		c.newVersionCmd(),
	)

	return c
}

// newRootCmd builds the bare root command. Errors are reported by the caller
// after Execute, so cobra's own usage and error printing stay silenced.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "kiln",
		Short:         "A build orchestrator for Swift WebAssembly projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	cmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	cmd.InitDefaultVersionFlag()
	cmd.Flags().Lookup("version").Usage = "Print the application version"

	cmd.InitDefaultHelpFlag()
	cmd.Flags().Lookup("help").Usage = "Show help for command"

	return cmd
}

// Execute runs the selected command under ctx.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs replaces os.Args for the next Execute.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects the command tree's stdout and stderr streams.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
