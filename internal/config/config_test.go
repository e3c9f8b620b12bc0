package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessreview/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:          ":8080",
		LogLevel:      "INFO",
		StoreBackend:  config.BackendFile,
		DataPath:      "data/games.json",
		DBPath:        "file:test.db",
		SyncBatchSize: 10,
		ImportDelay:   500 * time.Millisecond,
		HTTPTimeout:   15 * time.Second,
		SyncLockTTL:   time.Minute,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_MissingUsernameIsAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Username = ""
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }, "ADDR cannot be empty"},
		{"unknown backend", func(c *config.Config) { c.StoreBackend = "postgres" }, "STORE_BACKEND"},
		{"empty data path", func(c *config.Config) { c.DataPath = "" }, "DATA_PATH cannot be empty"},
		{"empty db path", func(c *config.Config) {
			c.StoreBackend = config.BackendSQLite
			c.DBPath = ""
		}, "DB_PATH cannot be empty"},
		{"zero batch", func(c *config.Config) { c.SyncBatchSize = 0 }, "SYNC_BATCH_SIZE"},
		{"negative delay", func(c *config.Config) { c.ImportDelay = -time.Millisecond }, "IMPORT_DELAY_MS"},
		{"negative interval", func(c *config.Config) { c.SyncInterval = -time.Second }, "SYNC_INTERVAL"},
		{"zero timeout", func(c *config.Config) { c.HTTPTimeout = 0 }, "HTTP_TIMEOUT"},
		{"redis without ttl", func(c *config.Config) {
			c.RedisAddr = "localhost:6379"
			c.SyncLockTTL = 0
		}, "SYNC_LOCK_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "CHESS_COM_USERNAME", "LICHESS_API_TOKEN", "STORE_BACKEND", "DATA_PATH",
		"SYNC_BATCH_SIZE", "IMPORT_DELAY_MS", "SYNC_INTERVAL", "REDIS_ADDR", "HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "", cfg.Username)
	assert.Equal(t, config.BackendFile, cfg.StoreBackend)
	assert.Equal(t, "data/games.json", cfg.DataPath)
	assert.Equal(t, 10, cfg.SyncBatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.ImportDelay)
	assert.Equal(t, time.Duration(0), cfg.SyncInterval)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://api.chess.com/pub", cfg.ChessComBaseURL)
	assert.Equal(t, "https://lichess.org", cfg.LichessBaseURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CHESS_COM_USERNAME", "  MagnusCarlsen ")
	t.Setenv("LICHESS_API_TOKEN", "lip_token")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("IMPORT_DELAY_MS", "250")
	t.Setenv("SYNC_INTERVAL", "30m")
	t.Setenv("SYNC_BATCH_SIZE", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, "MagnusCarlsen", cfg.Username)
	assert.Equal(t, "lip_token", cfg.LichessToken)
	assert.Equal(t, config.BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, 250*time.Millisecond, cfg.ImportDelay)
	assert.Equal(t, 30*time.Minute, cfg.SyncInterval)
	assert.Equal(t, 10, cfg.SyncBatchSize, "invalid ints fall back to the default")
}
