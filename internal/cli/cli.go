// Package cli implements the cityposter command-line interface.
//
// The main commands are:
//   - generate: Render a city poster to PNG, SVG, or PDF
//   - themes: List, preview, and interactively pick themes
//   - cache: Manage the geometry cache
//   - serve: Run the HTTP API
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/citymaps/cityposter/pkg/buildinfo"
)

// appName is used for directories and display.
const appName = "cityposter"

// Execute runs the cityposter CLI and returns an error if any command
// fails. The logger is attached to the context and accessible to all
// commands via loggerFromContext; --verbose raises it to debug level.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Cityposter renders city map posters from OpenStreetMap data",
		Long:         `Cityposter fetches street networks and map features from OpenStreetMap and renders them as printable posters in several themed styles, from flat daylight maps to glowing night views.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env may carry the Nominatim contact address and API
			// endpoint overrides; a missing file is fine.
			_ = godotenv.Load()

			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)

			cfg, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to cityposter.toml")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newThemesCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
