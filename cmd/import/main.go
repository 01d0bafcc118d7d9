// Command import loads a DATE;TIME;TYPE;VALUE;NOTE file into the tracker
// of a Telegram user, the same format accepted by the bot's /import flow.
//
// On postgres the whole file is written in one transaction unless
// -partial is given; sqlite always commits row by row.
//
// Exit codes: 0 = success, 1 = error, 2 = some rows were rejected.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ntotao/baby-tracker/internal/app"
	"github.com/ntotao/baby-tracker/internal/config"
	"github.com/ntotao/baby-tracker/internal/service/event"
	"github.com/ntotao/baby-tracker/internal/service/importer"
	"github.com/ntotao/baby-tracker/internal/service/tenant"
)

func main() {
	file := flag.String("file", "", "path of the file to import")
	userID := flag.Int64("user", 0, "Telegram user id owning or sharing the tracker")
	partial := flag.Bool("partial", false, "keep rows committed before a storage failure")
	flag.Parse()

	if *file == "" || *userID == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	code, err := run(ctx, logger, cfg, *file, *userID, *partial)
	if err != nil {
		logger.Error("import failed",
			slog.String("file", *file),
			slog.Int64("user_id", *userID),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	os.Exit(code)
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, path string, userID int64, partial bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 1, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	store, err := app.OpenStorage(ctx, logger, cfg.Database, false)
	if err != nil {
		return 1, err
	}
	defer store.Close()

	tenants := tenant.NewService(logger, store.Tenants, cfg.Tracker.DefaultTimezone)
	t, err := tenants.Resolve(ctx, userID)
	if err != nil {
		return 1, fmt.Errorf("resolve tracker: %w", err)
	}

	events := event.NewService(logger, store.Events, store.Babies, nil, cfg.Tracker.HistoryPageSize)
	im := importer.New(logger, events)

	var res *importer.Result
	doImport := func(ctx context.Context) error {
		res, err = im.Import(ctx, t, userID, f)
		return err
	}
	if partial {
		err = doImport(ctx)
	} else {
		err = store.InTx(ctx, doImport)
	}
	if err != nil {
		return 1, err
	}

	fmt.Println(res.Report())
	if len(res.Errors) > 0 {
		return 2, nil
	}
	return 0, nil
}
