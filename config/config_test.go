package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NVE_API_KEY", "")
	t.Setenv("HYDAPI_BASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://hydapi.nve.no/api/v1" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Port != 8080 || cfg.ListenAddr() != ":8080" {
		t.Errorf("Port = %d, ListenAddr = %q", cfg.Port, cfg.ListenAddr())
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if !cfg.DevLog {
		t.Error("empty APP_ENV should select the dev log handler")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NVE_API_KEY", " secret ")
	t.Setenv("HYDAPI_BASE_URL", "http://localhost:9999/api/v1/")
	t.Setenv("PORT", "3000")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.BaseURL != "http://localhost:9999/api/v1" {
		t.Errorf("BaseURL should drop the trailing slash, got %q", cfg.BaseURL)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
	if cfg.DevLog {
		t.Error("production APP_ENV should not select the dev handler")
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Error("invalid PORT should fail")
	}

	t.Setenv("PORT", "8080")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("invalid REQUEST_TIMEOUT should fail")
	}
}
