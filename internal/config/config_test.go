package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "host=localhost dbname=job_corner")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPPort != "5000" {
		t.Fatalf("expected default port 5000, got %s", cfg.HTTPPort)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected session ttl %s", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "dsn")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SESSION_COOKIE_SECURE", "yes")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Fatalf("unexpected session ttl %s", cfg.SessionTTL)
	}
	if !cfg.SecureCookies {
		t.Fatalf("expected secure cookies")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing dsn")
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "dsn")
	t.Setenv("SESSION_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad ttl")
	}
}
