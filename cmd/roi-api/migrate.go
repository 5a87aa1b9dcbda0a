package main

import (
	"fmt"

	"github.com/mozark/roi-planner/internal/config"
	"github.com/mozark/roi-planner/internal/store"
	"github.com/mozark/roi-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, teardown, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer teardown()

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		if err := migrate(cfg, db, store); err != nil {
			zap.S().Fatalw("running migrations", "error", err)
		}

		zap.S().Info("Db migrated")
		return nil
	},
}

// migrate runs the goose migrations on postgres and the gorm auto migration otherwise,
// then seeds the example scenario.
func migrate(cfg *config.Config, db *gorm.DB, s store.Store) error {
	if cfg.Database.Type == "pgsql" {
		if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
			return fmt.Errorf("running goose migrations: %w", err)
		}
	} else if err := s.InitialMigration(); err != nil {
		return fmt.Errorf("running initial migration: %w", err)
	}

	if err := s.Seed(); err != nil {
		return fmt.Errorf("seeding example scenario: %w", err)
	}
	return nil
}
