package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP Server Configuration
	Server ServerConfig

	// Route Table Configuration
	Routes RoutesConfig

	// Session Configuration
	Session SessionConfig

	// Navigation Audit Configuration
	Audit AuditConfig

	// Logging Configuration
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// RoutesConfig points at an optional routes YAML file
type RoutesConfig struct {
	File string // empty uses the built-in table
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret string // empty disables bearer tokens
}

// AuditConfig holds navigation audit configuration
type AuditConfig struct {
	Enabled       bool
	DatabaseURL   string
	Retention     time.Duration
	PruneSchedule string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var origins []string
	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	auditEnabled := false
	if raw := os.Getenv("AUDIT_ENABLED"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUDIT_ENABLED %q: %w", raw, err)
		}
		auditEnabled = parsed
	}

	retention, err := time.ParseDuration(getEnv("AUDIT_RETENTION", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_RETENTION: %w", err)
	}
	if retention <= 0 {
		return nil, fmt.Errorf("AUDIT_RETENTION must be positive, got %s", retention)
	}

	pruneSchedule := getEnv("AUDIT_PRUNE_SCHEDULE", "@hourly")
	if _, err := cron.ParseStandard(pruneSchedule); err != nil {
		return nil, fmt.Errorf("invalid AUDIT_PRUNE_SCHEDULE %q: %w", pruneSchedule, err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: origins,
		},
		Routes: RoutesConfig{
			File: os.Getenv("ROUTES_FILE"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
		},
		Audit: AuditConfig{
			Enabled:       auditEnabled,
			DatabaseURL:   getEnv("AUDIT_DATABASE_URL", "parkd-audit.sqlite"),
			Retention:     retention,
			PruneSchedule: pruneSchedule,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}
