package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var (
		product       string
		configuration string
		noOptimize    bool
		inspect       bool
		outputMode    string
		ci            bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the package to a WebAssembly artifact",
		Long: `Build compiles the Swift package to WebAssembly, runs the optimizer
and records the outcome in the build record store.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ci {
				outputMode = "linear"
			}
			return c.app.Build(cmd.Context(), app.BuildOptions{
				Product:       product,
				Configuration: configuration,
				NoOptimize:    noOptimize,
				Inspect:       inspect,
				OutputMode:    outputMode,
			})
		},
	}

	cmd.Flags().StringVarP(&product, "product", "p", "", "Product to build (defaults to the package's single executable)")
	cmd.Flags().StringVarP(&configuration, "configuration", "c", "", "Build configuration (debug or release)")
	cmd.Flags().BoolVar(&noOptimize, "no-optimize", false, "Skip the optimizer pass")
	cmd.Flags().BoolVarP(&inspect, "inspect", "i", false, "Keep the interface open after the build finishes")
	cmd.Flags().StringVarP(&outputMode, "output-mode", "o", "auto", "Output mode (tui, linear, ci or auto)")
	cmd.Flags().BoolVar(&ci, "ci", false, "Force plain output for CI environments")

	return cmd
}
