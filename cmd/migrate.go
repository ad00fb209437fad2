package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/mehndi-booking-service/internal/config"
	"github.com/m04kA/mehndi-booking-service/internal/infra/storage/migrations"
	"github.com/m04kA/mehndi-booking-service/pkg/logger"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Close()

			ctx := cmd.Context()
			db, err := openDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Up(ctx, db, log); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			log.Info("Migrations applied")
			return nil
		},
	}
}
