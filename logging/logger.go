package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/rastumbenjamin-gif/nve-vannforing/config"
)

// New builds the application logger: colorized tint output for local
// development, JSON lines otherwise.
func New(cfg config.Config) *slog.Logger {
	if cfg.DevLog {
		h := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", "vannforing")
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})
	return slog.New(h).With("app", "vannforing")
}
