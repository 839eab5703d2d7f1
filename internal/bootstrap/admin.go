package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/codearc/codearc-server/internal/features/user"
	"github.com/codearc/codearc-server/pkg/types"
)

const (
	defaultAdminEmail = "admin@codearc.dev"
	defaultAdminName  = "Platform Admin"
)

// EnsureDefaultAdmin creates the seed admin account if no admin exists yet.
// The password comes from CODEARC_ADMIN_PASSWORD; without it, seeding is
// skipped rather than shipping a hardcoded credential.
func EnsureDefaultAdmin(db *gorm.DB, logger *slog.Logger) error {
	password := os.Getenv("CODEARC_ADMIN_PASSWORD")
	if password == "" {
		logger.Info("default admin seeding skipped", slog.String("env_var", "CODEARC_ADMIN_PASSWORD unset"))
		return nil
	}

	var count int64
	err := db.Model(&user.User{}).Where("role = ?", types.RoleAdmin).Count(&count).Error
	if err != nil {
		if isUndefinedTableError(err) {
			logger.Warn("default admin skipped - users table missing")
			return nil
		}
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	email := strings.ToLower(getEnvDefault("CODEARC_ADMIN_EMAIL", defaultAdminEmail))

	hashed, err := user.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := user.User{
		Name:       defaultAdminName,
		Email:      email,
		Password:   hashed,
		Role:       types.RoleAdmin,
		IsApproved: true,
	}

	if err := user.Create(db, &admin); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			logger.Warn("default admin skipped - email already registered", slog.String("email", email))
			return nil
		}
		return fmt.Errorf("create admin: %w", err)
	}

	logger.Info("default admin created", slog.String("email", email))
	return nil
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func isUndefinedTableError(err error) bool {
	if err == nil {
		return false
	}

	message := err.Error()
	return strings.Contains(message, "relation \"users\" does not exist") ||
		strings.Contains(message, "no such table: users")
}
