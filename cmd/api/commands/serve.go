package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ambientefest/internal/app"
	"ambientefest/internal/otel"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until SIGINT or SIGTERM",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.Session.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	ctx := cmd.Context()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Serve(ctx)
}
