package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "codearc", cfg.Database.Name)
	assert.False(t, cfg.Database.RunMigrations)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CODEARC_ENV", "production")
	t.Setenv("CODEARC_PORT", "9000")
	t.Setenv("CODEARC_DB_MAX_OPEN_CONNS", "50")
	t.Setenv("CODEARC_DB_RUN_MIGRATIONS", "true")
	t.Setenv("CODEARC_ALLOWED_ORIGINS", "https://app.codearc.dev, https://admin.codearc.dev")
	t.Setenv("CODEARC_REDIS_ADDR", "127.0.0.1:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Database.RunMigrations)
	assert.Equal(t, []string{"https://app.codearc.dev", "https://admin.codearc.dev"}, cfg.AllowedOrigins)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "codearc",
		Password: "secret",
		Name:     "codearc",
		SSLMode:  "require",
		TimeZone: "UTC",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=5433")
	assert.Contains(t, dsn, "sslmode=require")
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("BOOL_KEY", "yes")
	assert.True(t, getEnvAsBool("BOOL_KEY", false))

	t.Setenv("BOOL_KEY", "off")
	assert.False(t, getEnvAsBool("BOOL_KEY", true))

	t.Setenv("BOOL_KEY", "maybe")
	assert.True(t, getEnvAsBool("BOOL_KEY", true))
}
