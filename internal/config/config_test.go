package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LOG_LEVEL", "RANDOM_SOURCE", "RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST", "API_TOKEN_SECRET", "API_TOKEN_TTL", "PASSGEN_LOG_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.RandomSource != "math" {
		t.Errorf("RandomSource = %q, want math", cfg.RandomSource)
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Errorf("rate limit = %v/%d, want 10/20", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.AuthEnabled() {
		t.Errorf("unexpected token config: %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RANDOM_SOURCE", "Crypto")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("API_TOKEN_SECRET", "s3cret")
	t.Setenv("API_TOKEN_TTL", "90m")
	t.Setenv("ENV", "development")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.LogLevel != slog.LevelDebug || cfg.RandomSource != "crypto" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 20 {
		t.Errorf("rate limit = %v/%d, want 2.5/20", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if !cfg.AuthEnabled() || cfg.TokenTTL != 90*time.Minute {
		t.Errorf("unexpected token config: %+v", cfg)
	}
}

func TestFromEnvRejectsUnknownSource(t *testing.T) {
	t.Setenv("RANDOM_SOURCE", "dice")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for unknown RANDOM_SOURCE")
	}
}

func TestFromEnvWeakSecretInProduction(t *testing.T) {
	t.Setenv("RANDOM_SOURCE", "")
	t.Setenv("ENV", "production")
	t.Setenv("API_TOKEN_SECRET", "short")
	if _, err := FromEnv(); err != ErrWeakTokenSecret {
		t.Fatalf("FromEnv() error = %v, want %v", err, ErrWeakTokenSecret)
	}

	t.Setenv("API_TOKEN_SECRET", strings.Repeat("k", 32))
	if _, err := FromEnv(); err != nil {
		t.Fatalf("FromEnv() unexpected error: %v", err)
	}
}
