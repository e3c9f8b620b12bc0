// Command sync runs one sync and prints the summary as JSON on stdout.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/vytor/chessreview/internal/app"
	"github.com/vytor/chessreview/internal/config"
	"github.com/vytor/chessreview/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	log := app.NewLogger(cfg)
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.NewContext(ctx, log)

	a, err := app.Build(ctx, cfg)
	if err != nil {
		log.Error("failed to initialise: %v", err)
		return 1
	}
	defer a.Close()

	result, err := a.SyncService.Sync(ctx)
	if err != nil {
		log.Error("sync failed: %v", err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Error("failed to write summary: %v", err)
		return 1
	}
	return 0
}
