package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/citymaps/cityposter/internal/api"
	"github.com/citymaps/cityposter/pkg/theme"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Serve runs the HTTP API that front ends use for poster generation.
The server exposes POST /api/generate, GET /api/themes, and
GET /api/health, and shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			gen, c := newGenerator(ctx, cfg, "", false, logger)
			store := theme.NewStore(cfg.ThemesDir, logger)
			geocoder := newGeocoder(cfg, c, logger)

			server := api.NewServer(gen, store, geocoder, logger)
			logger.Infof("Serving on %s", addr)
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
