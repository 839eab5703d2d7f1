package bootstrap

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/codearc/codearc-server/pkg/config"
	"github.com/codearc/codearc-server/pkg/database"
)

// ApplyDatabaseMigrations runs the schema migration when enabled via
// configuration. Connect already migrates on startup when the flag is set;
// this entry point exists for the migrate script.
func ApplyDatabaseMigrations(db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	if !cfg.Database.RunMigrations {
		logger.Info("database migrations skipped", slog.String("env_var", "CODEARC_DB_RUN_MIGRATIONS=false"))
		return nil
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("database migrations applied successfully")
	return nil
}
