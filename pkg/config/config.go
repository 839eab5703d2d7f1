package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment driven settings for the API server.
type Config struct {
	Env            string
	Host           string
	Port           string
	AllowedOrigins []string
	LogLevel       string

	JWTSecret        string
	JWTRefreshSecret string

	Database    DatabaseConfig
	Redis       RedisConfig
	SMTP        SMTPConfig
	Certificate CertificateConfig
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // seconds
	ConnMaxIdleTime int // seconds
	RunMigrations   bool
}

// RedisConfig contains cache connection settings. An empty Addr disables
// the cache and the stats snapshot job.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SMTPConfig contains outbound email settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Secure   bool
}

// CertificateConfig points at the external certificate renderer.
type CertificateConfig struct {
	RendererURL string
	Timeout     time.Duration
}

// Load builds a Config from environment variables with sensible defaults.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("CODEARC_ENV", "development"),
		Host:             getEnv("CODEARC_HOST", "0.0.0.0"),
		Port:             getEnv("CODEARC_PORT", "8080"),
		LogLevel:         getEnv("CODEARC_LOG_LEVEL", "info"),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "dev-refresh-secret-change-me"),
	}

	cfg.AllowedOrigins = splitAndTrim(os.Getenv("CODEARC_ALLOWED_ORIGINS"))
	cfg.Database = loadDatabaseConfig()
	cfg.Redis = loadRedisConfig()
	cfg.SMTP = loadSMTPConfig()
	cfg.Certificate = loadCertificateConfig()

	return cfg, nil
}

// ServerAddress joins the host and port into a listen address.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsProduction reports whether the app is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DSN builds a PostgreSQL DSN for gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
		d.TimeZone,
	)
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            getEnv("CODEARC_DB_HOST", "127.0.0.1"),
		Port:            getEnv("CODEARC_DB_PORT", "5432"),
		User:            getEnv("CODEARC_DB_USER", "postgres"),
		Password:        os.Getenv("CODEARC_DB_PASSWORD"),
		Name:            getEnv("CODEARC_DB_NAME", "codearc"),
		SSLMode:         getEnv("CODEARC_DB_SSLMODE", "disable"),
		TimeZone:        getEnv("CODEARC_DB_TIMEZONE", "UTC"),
		MaxIdleConns:    getEnvAsInt("CODEARC_DB_MAX_IDLE_CONNS", 5),
		MaxOpenConns:    getEnvAsInt("CODEARC_DB_MAX_OPEN_CONNS", 20),
		ConnMaxLifetime: getEnvAsInt("CODEARC_DB_CONN_MAX_LIFETIME", 1800),
		ConnMaxIdleTime: getEnvAsInt("CODEARC_DB_CONN_MAX_IDLE_TIME", 300),
		RunMigrations:   getEnvAsBool("CODEARC_DB_RUN_MIGRATIONS", false),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     os.Getenv("CODEARC_REDIS_ADDR"),
		Password: os.Getenv("CODEARC_REDIS_PASSWORD"),
		DB:       getEnvAsInt("CODEARC_REDIS_DB", 0),
	}
}

func loadSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:     getEnv("SMTP_PORT", "587"),
		Username: getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASS", ""),
		From:     getEnv("SMTP_FROM", "noreply@codearc.dev"),
		Secure:   getEnvAsBool("SMTP_SECURE", false),
	}
}

func loadCertificateConfig() CertificateConfig {
	timeout := getEnvAsInt("CODEARC_CERT_RENDER_TIMEOUT", 30)
	return CertificateConfig{
		RendererURL: os.Getenv("CODEARC_CERT_RENDERER_URL"),
		Timeout:     time.Duration(timeout) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return fallback
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';'
	})

	var cleaned []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	if len(cleaned) == 0 {
		return nil
	}

	return cleaned
}
