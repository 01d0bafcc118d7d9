// Command babytracker runs the Telegram bot and the HTTP API. All settings
// come from the environment or the CONFIG_PATH file; -h lists them.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ntotao/baby-tracker/internal/app"
	"github.com/ntotao/baby-tracker/internal/config"
)

func main() {
	flag.Usage = config.Usage(flag.CommandLine.Output())
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Printf("babytracker: %v", err)
		os.Exit(1)
	}
}
