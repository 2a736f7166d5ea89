package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/dcasim/internal/config"
	"github.com/rgehrsitz/dcasim/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		Long: `Start the projection API.

Configuration comes from the environment:
  DCASIM_ADDR            listen address (default :8080)
  DCASIM_REDIS_ADDR      redis address; the cache is in-memory when unset
  DCASIM_REDIS_PASSWORD  redis password
  DCASIM_REDIS_DB        redis database number
  DCASIM_RATE_LIMIT      requests per client per window (default 60)
  DCASIM_RATE_WINDOW     rate limit window (default 1m)
  DCASIM_CACHE_TTL       cached projection lifetime (default 10m)
  DCASIM_MAX_YEARS       longest duration the API accepts (default 100)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("server configuration: %w", err)
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, newEngine(cmd), nil, simpleCLILogger{}).Run(ctx)
		},
	}
	cmd.Flags().String("addr", "", "Listen address, overrides DCASIM_ADDR")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}
