package chesscom

import (
	"context"

	"github.com/vytor/chessreview/internal/models"
)

// ClientInterface defines the Chess.com operations the sync coordinator needs.
type ClientInterface interface {
	FetchArchives(ctx context.Context, username string) ([]string, error)
	FetchMonthly(ctx context.Context, archiveURL string) ([]models.SourceGame, error)
	GetRecentGames(ctx context.Context, username string, count int) ([]models.SourceGame, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
