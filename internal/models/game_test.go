package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessreview/internal/models"
)

func TestNewReviewedGame_MergesFields(t *testing.T) {
	src := models.SourceGame{
		URL:         "https://www.chess.com/game/live/123",
		UUID:        "abc123",
		PGN:         "1. e4 e5",
		TimeControl: "600",
		TimeClass:   models.TimeClassRapid,
		EndTime:     1700000000,
		FEN:         "irrelevant",
		White:       models.Participant{Username: "alice", Rating: 1500, Result: "win", UUID: "w-uuid"},
		Black:       models.Participant{Username: "bob", Rating: 1480, Result: "resigned"},
	}
	imp := models.ImportResult{ID: "LiChId01", URL: "https://lichess.org/LiChId01", EmbedURL: "https://lichess.org/embed/game/LiChId01"}

	g := models.NewReviewedGame(src, imp, 1700000001000)

	assert.Equal(t, "abc123", g.ChessComUUID)
	assert.Equal(t, "LiChId01", g.LichessID)
	assert.Equal(t, "rapid", g.TimeClass)
	assert.Equal(t, int64(1700000000), g.EndTime)
	assert.Equal(t, models.PlayerSummary{Username: "alice", Rating: 1500, Result: "win"}, g.White)
	assert.Equal(t, int64(1700000001000), g.SyncedAt)
}

func TestSourceGame_DecodesArchivePayload(t *testing.T) {
	raw := `{"url":"https://www.chess.com/game/live/9","uuid":"u-9","pgn":"1. d4","time_control":"180+2",
		"time_class":"blitz","rated":true,"end_time":1700000500,
		"white":{"username":"a","rating":1200,"result":"timeout","@id":"x","uuid":"y"},
		"black":{"username":"b","rating":1300,"result":"win"}}`

	var g models.SourceGame
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	assert.Equal(t, models.TimeClassBlitz, g.TimeClass)
	assert.Equal(t, "180+2", g.TimeControl)
	assert.Equal(t, "x", g.White.ID)
	assert.Equal(t, "win", g.Black.Result)
}
