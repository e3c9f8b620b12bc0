package services

import (
	"context"

	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/repository"
)

// GameService handles read access to reviewed games
type GameService interface {
	ListGames(ctx context.Context) ([]models.ReviewedGame, error)
	GetGame(ctx context.Context, lichessID string) (*models.ReviewedGame, error)
}

type gameService struct {
	store repository.GameStore
}

// NewGameService creates a new GameService
func NewGameService(store repository.GameStore) GameService {
	return &gameService{store: store}
}

func (s *gameService) ListGames(ctx context.Context) ([]models.ReviewedGame, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing reviewed games")

	games, err := s.store.List(ctx)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, asStorageError("read", err)
	}
	return games, nil
}

func (s *gameService) GetGame(ctx context.Context, lichessID string) (*models.ReviewedGame, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting game: lichess_id=%s", lichessID)

	if lichessID == "" {
		return nil, errors.NewValidationError("id", "cannot be empty")
	}

	game, err := s.store.Get(ctx, lichessID)
	if err != nil {
		log.Error("failed to get game: %v", err)
		return nil, asStorageError("read", err)
	}
	if game == nil {
		return nil, errors.NewNotFoundError("game", lichessID)
	}
	return game, nil
}
