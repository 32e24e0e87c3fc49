package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	var (
		toolsets bool
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build records and generated files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := app.CleanOptions{}
			switch {
			case all:
				opts.Records = true
				opts.Toolsets = true
				opts.Entry = true
			case toolsets:
				opts.Toolsets = true
			default:
				opts.Records = true
				opts.Entry = true
			}
			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&toolsets, "toolsets", "t", false, "Remove only the materialized toolset files")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Remove build records, toolsets and the entry module")

	return cmd
}
