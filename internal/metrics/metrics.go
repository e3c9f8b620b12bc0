package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync run outcomes for SyncRunsTotal.
const (
	OutcomeSuccess    = "success"
	OutcomeFailed     = "failed"
	OutcomeInProgress = "in_progress"
)

var (
	SyncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chessreview_sync_runs_total",
		Help: "The total number of sync runs by outcome",
	}, []string{"outcome"})
	SyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chessreview_sync_duration_seconds",
		Help:    "Wall time of sync runs that acquired the lock, by outcome",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	GamesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chessreview_games_fetched_total",
		Help: "The total number of recent games read from chess.com",
	})
	GamesImportedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chessreview_games_imported_total",
		Help: "The total number of games imported to lichess and stored",
	})
	GamesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chessreview_games_skipped_total",
		Help: "The total number of fetched games that were already stored",
	})
	ImportFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chessreview_import_failures_total",
		Help: "The total number of lichess import failures",
	})
)
