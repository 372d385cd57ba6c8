package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/rastumbenjamin-gif/nve-vannforing/config"
	httpserver "github.com/rastumbenjamin-gif/nve-vannforing/http"
	"github.com/rastumbenjamin-gif/nve-vannforing/hydapi"
	"github.com/rastumbenjamin-gif/nve-vannforing/logging"
	"github.com/rastumbenjamin-gif/nve-vannforing/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := hydapi.NewClient(cfg.BaseURL, cfg.RequestTimeout, logger)
	sess := session.New(client, cfg.APIKey, logger)

	// With a configured key the catalog can be warmed up front; a failure
	// is not fatal, the user can retry from the dashboard.
	if cfg.APIKey != "" {
		if err := sess.FetchCatalog(ctx); err != nil {
			logger.Warn("startup catalog fetch failed", "error", err)
		}
	}

	srv := httpserver.New(cfg, sess, logger)
	logger.Info("dashboard listening", "addr", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
