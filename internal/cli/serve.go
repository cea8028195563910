package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"ejector-tool/internal/config"
	"ejector-tool/internal/server"
)

func newServeCmd(cfg config.Config) *cobra.Command {
	addr := cfg.ListenAddr
	verbose := cfg.Verbose

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sizing calculator as a JSON API",
		Long: `Starts an HTTP server with:
  POST /api/size    {"case": "...", "motive": [...], "suction": [...]}
  GET  /api/health`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := newLogger(cmd.ErrOrStderr(), verbose)
			srv := server.New(log, rate.Limit(cfg.RateLimit), cfg.RateBurst)
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", verbose, "log debug records")
	return cmd
}
