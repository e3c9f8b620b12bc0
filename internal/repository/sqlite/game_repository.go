package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	apperrors "github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var gameColumns = []string{
	"chess_com_uuid", "chess_com_url", "lichess_id", "lichess_url", "embed_url", "pgn",
	"time_control", "time_class", "end_time",
	"white_username", "white_rating", "white_result",
	"black_username", "black_rating", "black_result",
	"eco", "opening", "synced_at",
}

type gameStore struct {
	db *sql.DB
}

// NewGameStore creates a GameStore backed by the reviewed_games table.
func NewGameStore(db *sql.DB) repository.GameStore {
	return &gameStore{db: db}
}

// newestFirst orders by end time, then insertion order for ties.
func newestFirst(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	return q.OrderBy("end_time DESC", "rowid ASC")
}

func (r *gameStore) List(ctx context.Context) ([]models.ReviewedGame, error) {
	log := logger.FromContext(ctx).WithPrefix("game_store")

	query, args, err := newestFirst(sqlBuilder.Select(gameColumns...).From("reviewed_games")).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, apperrors.NewStorageError("read", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, apperrors.NewStorageError("read", err)
	}
	defer rows.Close()

	games := []models.ReviewedGame{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("failed to scan game row: %v", err)
			return nil, apperrors.NewStorageError("read", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("read", err)
	}
	log.Debug("found %d games", len(games))
	return games, nil
}

func (r *gameStore) Get(ctx context.Context, lichessID string) (*models.ReviewedGame, error) {
	log := logger.FromContext(ctx).WithPrefix("game_store")

	query, args, err := newestFirst(sqlBuilder.Select(gameColumns...).From("reviewed_games").
		Where(squirrel.Eq{"lichess_id": lichessID}).Limit(1)).ToSql()
	if err != nil {
		return nil, apperrors.NewStorageError("read", err)
	}

	g, err := scanGame(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("game not found: lichess_id=%s", lichessID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get game: %v", err)
		return nil, apperrors.NewStorageError("read", err)
	}
	return &g, nil
}

func (r *gameStore) Has(ctx context.Context, sourceID string) (bool, error) {
	query, args, err := sqlBuilder.Select("COUNT(*)").From("reviewed_games").
		Where(squirrel.Eq{"chess_com_uuid": sourceID}).ToSql()
	if err != nil {
		return false, apperrors.NewStorageError("read", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContext(ctx).WithPrefix("game_store").Error("failed to check game: %v", err)
		return false, apperrors.NewStorageError("read", err)
	}
	return n > 0, nil
}

func (r *gameStore) Save(ctx context.Context, g models.ReviewedGame) error {
	log := logger.FromContext(ctx).WithPrefix("game_store")

	query, args, err := sqlBuilder.Insert("reviewed_games").Columns(gameColumns...).Values(
		g.ChessComUUID, g.ChessComURL, g.LichessID, g.LichessURL, g.EmbedURL, g.PGN,
		g.TimeControl, g.TimeClass, g.EndTime,
		g.White.Username, g.White.Rating, g.White.Result,
		g.Black.Username, g.Black.Rating, g.Black.Result,
		g.ECO, g.Opening, g.SyncedAt,
	).ToSql()
	if err != nil {
		return apperrors.NewStorageError("write", err)
	}

	err = tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Error("failed to save game %s: %v", g.ChessComUUID, err)
		return apperrors.NewStorageError("write", err)
	}
	log.Debug("saved game %s", g.ChessComUUID)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (models.ReviewedGame, error) {
	var g models.ReviewedGame
	err := row.Scan(
		&g.ChessComUUID, &g.ChessComURL, &g.LichessID, &g.LichessURL, &g.EmbedURL, &g.PGN,
		&g.TimeControl, &g.TimeClass, &g.EndTime,
		&g.White.Username, &g.White.Rating, &g.White.Result,
		&g.Black.Username, &g.Black.Rating, &g.Black.Result,
		&g.ECO, &g.Opening, &g.SyncedAt,
	)
	return g, err
}
