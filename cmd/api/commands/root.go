// Package commands holds the ambientefest CLI.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ambientefest/internal/config"
	"ambientefest/internal/logging"
)

var (
	cfg    *config.AppConfig
	logger *zap.Logger
)

// Execute runs the root command. Without a subcommand it serves.
func Execute() error {
	root := &cobra.Command{
		Use:           "ambientefest",
		Short:         "AmbienteFest marketplace gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			logger = logging.NewStdout(cfg.LogLevel, cfg.Location())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: runServe,
	}

	root.AddCommand(serveCmd(), seedAdminCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	if err != nil && logger != nil {
		logger.Error("command failed", zap.Error(err))
	}
	return err
}
