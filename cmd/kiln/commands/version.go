package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the kiln version and build metadata",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("kiln version %s (commit: %s, date: %s)\n", build.Version, build.Commit, build.Date)
		},
	}
}
