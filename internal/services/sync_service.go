package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/chessreview/internal/chesscom"
	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/lichess"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/metrics"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/pgn"
	"github.com/vytor/chessreview/internal/repository"
	"github.com/vytor/chessreview/internal/synclock"
)

const (
	DefaultBatchSize   = 10
	DefaultImportDelay = 500 * time.Millisecond
)

// SyncService reconciles recent chess.com games with the local store.
type SyncService interface {
	Sync(ctx context.Context) (*models.SyncResult, error)
}

// SyncConfig holds the per-deployment sync settings.
type SyncConfig struct {
	Username    string
	BatchSize   int
	ImportDelay time.Duration
}

// SyncOption overrides collaborators that tests need to control.
type SyncOption func(*syncService)

// WithClock replaces time.Now for the synced-at timestamp.
func WithClock(now func() time.Time) SyncOption {
	return func(s *syncService) { s.now = now }
}

// WithSleeper replaces the pause taken after each successful import.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) SyncOption {
	return func(s *syncService) { s.sleep = sleep }
}

type syncService struct {
	source   chesscom.ClientInterface
	importer lichess.Importer
	store    repository.GameStore
	lock     synclock.Locker
	config   SyncConfig
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewSyncService creates a SyncService. A nil lock defaults to a process-wide
// mutex.
func NewSyncService(
	source chesscom.ClientInterface,
	importer lichess.Importer,
	store repository.GameStore,
	lock synclock.Locker,
	config SyncConfig,
	opts ...SyncOption,
) SyncService {
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultBatchSize
	}
	if config.ImportDelay < 0 {
		config.ImportDelay = 0
	}
	if lock == nil {
		lock = synclock.NewLocal()
	}
	s := &syncService{
		source:   source,
		importer: importer,
		store:    store,
		lock:     lock,
		config:   config,
		now:      time.Now,
		sleep:    sleepCtx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *syncService) Sync(ctx context.Context) (*models.SyncResult, error) {
	log := logger.FromContext(ctx).WithPrefix("sync")

	if s.config.Username == "" {
		metrics.SyncRunsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, errors.NewConfigMissingError("CHESS_COM_USERNAME")
	}
	log = log.WithField("username", s.config.Username)

	release, ok, err := s.lock.TryLock(ctx)
	if err != nil {
		log.Error("failed to acquire sync lock: %v", err)
		metrics.SyncRunsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, errors.NewInternalError(fmt.Errorf("acquire sync lock: %w", err))
	}
	if !ok {
		log.Warn("sync already running, refusing to start another")
		metrics.SyncRunsTotal.WithLabelValues(metrics.OutcomeInProgress).Inc()
		return nil, errors.NewSyncInProgressError()
	}
	defer release()

	start := time.Now()
	result, err := s.run(logger.NewContext(ctx, log))
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		metrics.SyncDuration.WithLabelValues(metrics.OutcomeFailed).Observe(time.Since(start).Seconds())
		return nil, err
	}
	metrics.SyncRunsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.SyncDuration.WithLabelValues(metrics.OutcomeSuccess).Observe(time.Since(start).Seconds())

	log.Info("sync finished in %v: synced=%d skipped=%d errors=%d",
		time.Since(start), result.Synced, result.Skipped, len(result.Errors))
	return result, nil
}

func (s *syncService) run(ctx context.Context) (*models.SyncResult, error) {
	log := logger.FromContext(ctx)

	recent, err := s.source.GetRecentGames(ctx, s.config.Username, s.config.BatchSize)
	if err != nil {
		log.Error("failed to fetch recent games: %v", err)
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.NewSourceUnavailableError("failed to fetch recent games", err)
	}
	metrics.GamesFetchedTotal.Add(float64(len(recent)))
	log.Debug("fetched %d recent games", len(recent))

	result := &models.SyncResult{
		Errors: []string{},
		Games:  []models.ReviewedGame{},
	}

	for _, g := range recent {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := sourceID(g)
		gameLog := log.WithField("game_id", id)

		exists, err := s.store.Has(ctx, id)
		if err != nil {
			gameLog.Error("failed to check store: %v", err)
			return nil, asStorageError("read", err)
		}
		if exists {
			gameLog.Debug("already synced, skipping")
			continue
		}

		imported, err := s.importer.ImportGame(ctx, g.PGN)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			msg := importMessage(err)
			gameLog.Warn("import failed: %s", msg)
			metrics.ImportFailuresTotal.Inc()
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to import game %s: %s", id, msg))
			continue
		}

		reviewed := models.NewReviewedGame(g, imported, s.now().UnixMilli())
		reviewed.ChessComUUID = id
		if op, err := pgn.DetectOpening(g.PGN); err != nil {
			gameLog.Debug("opening not detected: %v", err)
		} else {
			reviewed.ECO = op.ECO
			reviewed.Opening = op.Name
		}

		// An imported game is stored even when ctx is cancelled.
		if err := s.store.Save(context.WithoutCancel(ctx), reviewed); err != nil {
			gameLog.Error("failed to save game: %v", err)
			return nil, asStorageError("write", err)
		}
		result.Games = append(result.Games, reviewed)
		metrics.GamesImportedTotal.Inc()

		p := chesscom.PlayerPerspective(s.config.Username, reviewed)
		gameLog.Info("imported as %s: %s vs %s (%d), %s",
			reviewed.LichessID, p.Color, p.Opponent.Username, p.Opponent.Rating, chesscom.ResultLabel(p.Player.Result))

		if err := s.sleep(ctx, s.config.ImportDelay); err != nil {
			return nil, err
		}
	}

	result.Synced = len(result.Games)
	result.Skipped = len(recent) - result.Synced - len(result.Errors)
	metrics.GamesSkippedTotal.Add(float64(result.Skipped))
	return result, nil
}

// sourceID is the chess.com game uuid, or the numeric id from the game URL
// for records that carry no uuid.
func sourceID(g models.SourceGame) string {
	if g.UUID != "" {
		return g.UUID
	}
	return pgn.ExtractGameID(g.URL)
}

func importMessage(err error) string {
	if appErr, ok := errors.As(err); ok && appErr.Code == errors.ErrCodeImportFailed {
		return appErr.Message
	}
	return err.Error()
}

func asStorageError(op string, err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.NewStorageError(op, err)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
