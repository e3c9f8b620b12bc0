package lichess

import (
	"context"

	"github.com/vytor/chessreview/internal/models"
)

// Importer is the analysis-service operation the sync coordinator depends on.
type Importer interface {
	ImportGame(ctx context.Context, pgn string) (models.ImportResult, error)
}

var _ Importer = (*Client)(nil)
