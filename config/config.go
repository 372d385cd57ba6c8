package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL        = "https://hydapi.nve.no/api/v1"
	defaultPort           = 8080
	defaultRequestTimeout = 30 * time.Second
)

// Config holds environment-driven settings for the dashboard.
type Config struct {
	// APIKey is the optional default hydapi credential. When empty the
	// dashboard starts gated and the user supplies a key at runtime.
	APIKey         string
	BaseURL        string
	Port           int
	RequestTimeout time.Duration
	LogLevel       slog.Level
	DevLog         bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		BaseURL:        defaultBaseURL,
		Port:           defaultPort,
		RequestTimeout: defaultRequestTimeout,
		LogLevel:       slog.LevelInfo,
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("NVE_API_KEY"))

	if u := strings.TrimSpace(os.Getenv("HYDAPI_BASE_URL")); u != "" {
		cfg.BaseURL = strings.TrimRight(u, "/")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
		cfg.Port = port
	}

	if v := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	cfg.DevLog = env == "" || strings.EqualFold(env, "dev")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
