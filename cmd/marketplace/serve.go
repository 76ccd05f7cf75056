package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/codemarket/internal/app"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig: %w", err)
			}

			log.Info("starting marketplace", slog.String("env", cfg.Env))
			log.Debug("debug messages are enabled")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if migrate {
				if err := app.Migrate(ctx, cfg.Postgres, log); err != nil {
					return fmt.Errorf("app.Migrate: %w", err)
				}
			}

			a, err := app.New(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("app.New: %w", err)
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- a.Run()
			}()

			select {
			case <-ctx.Done():
				log.Info("stopping marketplace...")
			case err := <-errCh:
				if err != nil {
					log.Error("server crashed", slog.Any("error", err))
					_ = a.Shutdown(context.Background())
					return err
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.GracefulShutdownTimeout)
			defer cancel()

			if err := a.Shutdown(shutdownCtx); err != nil {
				log.Error("failed to stop server", slog.Any("error", err))
				return err
			}

			log.Info("marketplace stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the database schema before starting")

	return cmd
}
