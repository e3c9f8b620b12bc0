package repository

import (
	"context"
	"sort"

	"github.com/vytor/chessreview/internal/models"
)

// GameStore persists reviewed games. Implementations return games newest
// first by end time. Callers check Has before Save; only the sqlite backend
// rejects a duplicate source id on its own.
type GameStore interface {
	// List returns every stored game, newest first.
	List(ctx context.Context) ([]models.ReviewedGame, error)
	// Get returns the game with the given analysis id, or nil when absent.
	Get(ctx context.Context, lichessID string) (*models.ReviewedGame, error)
	// Has reports whether a game with the given source id is stored.
	Has(ctx context.Context, sourceID string) (bool, error)
	// Save appends a game and keeps the collection ordered.
	Save(ctx context.Context, game models.ReviewedGame) error
}

// SortNewestFirst orders games by descending end time. Equal end times keep
// their insertion order.
func SortNewestFirst(games []models.ReviewedGame) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].EndTime > games[j].EndTime
	})
}
