package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/chessreview/internal/api"
	"github.com/vytor/chessreview/internal/app"
	"github.com/vytor/chessreview/internal/config"
	"github.com/vytor/chessreview/internal/jobs"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/worker"
)

func main() {
	cfg := config.Load()

	log := app.NewLogger(cfg)
	logger.SetDefault(log)
	defer func() { _ = log.Sync() }()

	log.Info("===========================================")
	log.Info("Chess Review Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("store_backend=%s", cfg.StoreBackend)
	log.Debug("data_path=%s", cfg.DataPath)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("sync_batch_size=%d", cfg.SyncBatchSize)
	log.Debug("import_delay=%v", cfg.ImportDelay)
	log.Debug("sync_interval=%v", cfg.SyncInterval)
	log.Debug("log_level=%s", cfg.LogLevel)
	if cfg.Username == "" {
		log.Warn("CHESS_COM_USERNAME not set, sync requests will fail until it is configured")
	}

	ctx, cancel := context.WithCancel(context.Background())

	a, err := app.Build(logger.NewContext(ctx, log), cfg)
	if err != nil {
		log.Error("failed to initialise: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing store")
		if err := a.Close(); err != nil {
			log.Warn("close error: %v", err)
		}
	}()

	// Scheduled syncs run one at a time; a full queue drops the tick.
	syncPool := worker.NewPool(1, 1)
	syncPool.Start(ctx)
	scheduler := jobs.NewScheduler(jobs.NewWorkerQueue(syncPool, a.SyncService), cfg.SyncInterval)
	go scheduler.Run(ctx)

	srv := &api.Server{
		GameService: a.GameService,
		SyncService: a.SyncService,
		Ready:       a.Ready,
	}

	// WriteTimeout covers a full POST /sync with its import pauses.
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping scheduler and sync pool")
	cancel()
	syncPool.Stop()

	log.Info("===========================================")
	log.Info("Chess Review Server Stopped")
	log.Info("===========================================")
}
