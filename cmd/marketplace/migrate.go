package main

import (
	"fmt"

	"github.com/nikolayk812/codemarket/internal/app"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig: %w", err)
			}

			return app.Migrate(cmd.Context(), cfg.Postgres, log)
		},
	}
}
