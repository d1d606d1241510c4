package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minTokenSecretLen = 32

var ErrWeakTokenSecret = errors.New("API_TOKEN_SECRET must be at least 32 bytes in production")

type Config struct {
	Port           string
	Env            string
	LogLevel       slog.Level
	RandomSource   string
	RateLimitRPS   float64
	RateLimitBurst int
	TokenSecret    string
	TokenTTL       time.Duration
	LogFile        string
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),
		RandomSource:   strings.ToLower(getEnv("RANDOM_SOURCE", "math")),
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		TokenSecret:    os.Getenv("API_TOKEN_SECRET"),
		TokenTTL:       getEnvDuration("API_TOKEN_TTL", 24*time.Hour),
		LogFile:        os.Getenv("PASSGEN_LOG_FILE"),
	}

	if cfg.RandomSource != "math" && cfg.RandomSource != "crypto" {
		return Config{}, fmt.Errorf("RANDOM_SOURCE %q: want math or crypto", cfg.RandomSource)
	}
	if cfg.Env == "production" && cfg.TokenSecret != "" && len(cfg.TokenSecret) < minTokenSecretLen {
		return Config{}, ErrWeakTokenSecret
	}

	return cfg, nil
}

// AuthEnabled reports whether the API requires bearer tokens.
func (c Config) AuthEnabled() bool {
	return c.TokenSecret != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("ignoring invalid integer", "key", key, "value", v)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		slog.Warn("ignoring invalid number", "key", key, "value", v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("ignoring invalid duration", "key", key, "value", v)
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
