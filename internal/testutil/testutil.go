package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/chessreview/internal/db"
	"github.com/vytor/chessreview/internal/models"
)

// NewTestDB opens a private in-memory SQLite database with all migrations
// applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open("file::memory:")
	require.NoError(t, err)
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SourceGame builds a chess.com game with a parseable move record.
func SourceGame(id string, endTime int64) models.SourceGame {
	return models.SourceGame{
		URL:         "https://www.chess.com/game/live/" + id,
		UUID:        id,
		PGN:         fmt.Sprintf("[Event \"Live Chess\"]\n[Link \"%s\"]\n\n1. e4 e5 2. Nf3 Nc6 *", id),
		TimeControl: "600",
		TimeClass:   models.TimeClassRapid,
		Rated:       true,
		EndTime:     endTime,
		White:       models.Participant{Username: "tester", Rating: 1500, Result: "win"},
		Black:       models.Participant{Username: "opponent", Rating: 1490, Result: "resigned"},
	}
}

// ImportResult builds the analysis-service answer for a game id.
func ImportResult(id string) models.ImportResult {
	return models.ImportResult{
		ID:       "li" + id,
		URL:      "https://lichess.org/li" + id,
		EmbedURL: "https://lichess.org/embed/game/li" + id + "?theme=auto&bg=auto",
	}
}
