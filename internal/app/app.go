package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/vytor/chessreview/internal/api"
	"github.com/vytor/chessreview/internal/chesscom"
	"github.com/vytor/chessreview/internal/config"
	"github.com/vytor/chessreview/internal/db"
	"github.com/vytor/chessreview/internal/lichess"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/repository"
	"github.com/vytor/chessreview/internal/repository/jsonfile"
	"github.com/vytor/chessreview/internal/repository/sqlite"
	"github.com/vytor/chessreview/internal/services"
	"github.com/vytor/chessreview/internal/synclock"
)

// App holds the wired services shared by the server and the sync CLI.
type App struct {
	Store       repository.GameStore
	GameService services.GameService
	SyncService services.SyncService
	Ready       api.ReadyCheck

	closers []func() error
}

// NewLogger builds the process logger from configuration.
func NewLogger(cfg config.Config) *logger.Logger {
	return logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogFormat != "json"),
		logger.WithJSON(cfg.LogFormat == "json"),
		logger.WithOutput(os.Stderr),
	)
}

// Build opens the configured store and sync lock and wires the services.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx).WithPrefix("app")
	a := &App{}

	switch cfg.StoreBackend {
	case config.BackendSQLite:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.closers = append(a.closers, database.Close)
		a.Store = sqlite.NewGameStore(database.DB)
		a.Ready = func(ctx context.Context) error { return database.PingContext(ctx) }
	default:
		store := jsonfile.New(cfg.DataPath)
		a.Store = store
		a.Ready = func(ctx context.Context) error {
			_, err := store.List(ctx)
			return err
		}
	}
	log.Info("using %s store", cfg.StoreBackend)

	var lock synclock.Locker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.closers = append(a.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis at %s not reachable yet: %v", cfg.RedisAddr, err)
		}
		lock = synclock.NewRedis(rdb, synclock.DefaultKey, cfg.SyncLockTTL)
		log.Info("using redis sync lock at %s", cfg.RedisAddr)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	source := chesscom.New(
		chesscom.WithBaseURL(cfg.ChessComBaseURL),
		chesscom.WithUserAgent(cfg.UserAgent),
		chesscom.WithHTTPClient(httpClient),
	)
	importer := lichess.New(
		lichess.WithBaseURL(cfg.LichessBaseURL),
		lichess.WithToken(cfg.LichessToken),
		lichess.WithUserAgent(cfg.UserAgent),
		lichess.WithHTTPClient(httpClient),
	)
	if cfg.LichessToken == "" {
		log.Warn("LICHESS_API_TOKEN not set, imports use anonymous rate limits")
	}

	a.GameService = services.NewGameService(a.Store)
	a.SyncService = services.NewSyncService(source, importer, a.Store, lock, services.SyncConfig{
		Username:    cfg.Username,
		BatchSize:   cfg.SyncBatchSize,
		ImportDelay: cfg.ImportDelay,
	})
	return a, nil
}

// Close releases the store and lock connections.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
