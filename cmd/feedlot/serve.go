package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/confinamento/feedlot-engine/internal/api"
	"github.com/confinamento/feedlot-engine/internal/matrix"
	"github.com/confinamento/feedlot-engine/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation and pricing-matrix HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, closeStore, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			h := api.NewHandler(c.engine(nil), c.resolver(store), matrix.NewService(store, logger.Named(c.logger, "matrix")), c.logger)
			app := api.NewApp("feedlot-engine", h, logger.Named(c.logger, "http"))

			if addr == "" {
				addr = c.settings.HTTP.Addr
			}
			errc := make(chan error, 1)
			go func() {
				c.logger.Info("http server listening", zap.String("addr", addr))
				errc <- app.Listen(addr)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			c.logger.Info("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.ShutdownWithContext(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	return cmd
}
