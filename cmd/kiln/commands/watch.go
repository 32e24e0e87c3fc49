package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	var (
		product       string
		configuration string
		outputMode    string
		ci            bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild on source changes and reload the dev server",
		Long: `Watch builds the package once, then keeps rebuilding whenever a watched
source file changes. Each successful rebuild touches the entry module so a
dev server watching it reloads the page.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ci {
				outputMode = "linear"
			}
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Product:       product,
				Configuration: configuration,
				OutputMode:    outputMode,
			})
		},
	}

	cmd.Flags().StringVarP(&product, "product", "p", "", "Product to build (defaults to the package's single executable)")
	cmd.Flags().StringVarP(&configuration, "configuration", "c", "", "Build configuration (debug or release)")
	cmd.Flags().StringVarP(&outputMode, "output-mode", "o", "auto", "Output mode (tui, linear, ci or auto)")
	cmd.Flags().BoolVar(&ci, "ci", false, "Force plain output for CI environments")

	return cmd
}
