// Command migrate applies pending schema migrations for the configured
// database driver and exits. It ignores database.auto_migrate.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ntotao/baby-tracker/internal/app"
	"github.com/ntotao/baby-tracker/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := app.OpenStorage(ctx, logger, cfg.Database, true)
	if err != nil {
		logger.Error("migrate failed",
			slog.String("driver", cfg.Database.Driver),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	store.Close()
}
