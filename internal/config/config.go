package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Addr            string
	LogLevel        string
	LogFormat       string
	Username        string
	LichessToken    string
	ChessComBaseURL string
	LichessBaseURL  string
	UserAgent       string
	HTTPTimeout     time.Duration
	StoreBackend    string
	DataPath        string
	DBPath          string
	SyncBatchSize   int
	ImportDelay     time.Duration
	SyncInterval    time.Duration
	RedisAddr       string
	SyncLockTTL     time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		LogFormat:       envOr("LOG_FORMAT", "console"),
		Username:        strings.TrimSpace(os.Getenv("CHESS_COM_USERNAME")),
		LichessToken:    strings.TrimSpace(os.Getenv("LICHESS_API_TOKEN")),
		ChessComBaseURL: envOr("CHESS_COM_BASE_URL", "https://api.chess.com/pub"),
		LichessBaseURL:  envOr("LICHESS_BASE_URL", "https://lichess.org"),
		UserAgent:       envOr("USER_AGENT", "ChessGameReviewApp/0.1 (personal review tool)"),
		HTTPTimeout:     envDurationOr("HTTP_TIMEOUT", 15*time.Second),
		StoreBackend:    strings.ToLower(envOr("STORE_BACKEND", BackendFile)),
		DataPath:        envOr("DATA_PATH", "data/games.json"),
		DBPath:          envOr("DB_PATH", "file:chessreview.db"),
		SyncBatchSize:   envIntOr("SYNC_BATCH_SIZE", 10),
		ImportDelay:     time.Duration(envIntOr("IMPORT_DELAY_MS", 500)) * time.Millisecond,
		SyncInterval:    envDurationOr("SYNC_INTERVAL", 0),
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		SyncLockTTL:     envDurationOr("SYNC_LOCK_TTL", 5*time.Minute),
	}
}

// Validate checks values that would make the server unusable. A missing
// username is not an error here; sync reports it on each call.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	switch c.StoreBackend {
	case BackendFile:
		if strings.TrimSpace(c.DataPath) == "" {
			problems = append(problems, "DATA_PATH cannot be empty")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			problems = append(problems, "DB_PATH cannot be empty")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_BACKEND must be %q or %q, got %q", BackendFile, BackendSQLite, c.StoreBackend))
	}
	if c.SyncBatchSize < 1 {
		problems = append(problems, "SYNC_BATCH_SIZE must be at least 1")
	}
	if c.ImportDelay < 0 {
		problems = append(problems, "IMPORT_DELAY_MS cannot be negative")
	}
	if c.SyncInterval < 0 {
		problems = append(problems, "SYNC_INTERVAL cannot be negative")
	}
	if c.HTTPTimeout <= 0 {
		problems = append(problems, "HTTP_TIMEOUT must be positive")
	}
	if c.RedisAddr != "" && c.SyncLockTTL <= 0 {
		problems = append(problems, "SYNC_LOCK_TTL must be positive when REDIS_ADDR is set")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
