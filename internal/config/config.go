package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration, read once in main.
type Config struct {
	HTTPPort           string
	PostgresDSN        string
	SessionTTL         time.Duration
	SessionCookieName  string
	SecureCookies      bool
	CORSAllowedOrigins []string
	LogLevel           slog.Level
	GinMode            string
}

func Load() (Config, error) {
	ttl := 24 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		ttl = parsed
	}

	var origins []string
	for _, value := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			origins = append(origins, value)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	cfg := Config{
		HTTPPort:           getEnv("HTTP_PORT", "5000"),
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		SessionTTL:         ttl,
		SessionCookieName:  getEnv("SESSION_COOKIE_NAME", "session_id"),
		SecureCookies:      envBool("SESSION_COOKIE_SECURE", false),
		CORSAllowedOrigins: origins,
		LogLevel:           level,
		GinMode:            getEnv("GIN_MODE", "release"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.SessionCookieName == "" {
		return errors.New("SESSION_COOKIE_NAME must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
