package pgn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessreview/internal/pgn"
)

const sicilianRecord = `[Event "Live Chess"]
[Site "Chess.com"]
[White "alice"]
[Black "bob"]
[Result "1-0"]
[ECO "B20"]
[TimeControl "600"]

1. e4 c5 2. Nf3 d6 1-0`

func TestParsePGNHeaders(t *testing.T) {
	headers := pgn.ParsePGNHeaders(sicilianRecord)

	assert.Equal(t, "Live Chess", headers["Event"])
	assert.Equal(t, "alice", headers["White"])
	assert.Equal(t, "1-0", headers["Result"])
	assert.Equal(t, "B20", headers["ECO"])
}

func TestParsePGNHeaders_Ignored(t *testing.T) {
	tests := []struct {
		name string
		pgn  string
	}{
		{"empty", ""},
		{"moves only", "1. e4 e5 2. Nf3 Nc6"},
		{"unquoted values", "[Event Live Chess]\n[Site Chess.com]\n1. e4 e5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, pgn.ParsePGNHeaders(tt.pgn))
		})
	}
}

func TestExtractGameID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.chess.com/game/live/12345678", "12345678"},
		{"https://www.chess.com/game/daily/98765432", "98765432"},
		{"https://www.chess.com/game/live/00012345", "00012345"},
		{"https://www.chess.com/game/live", "https://www.chess.com/game/live"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, pgn.ExtractGameID(tt.url), "url %q", tt.url)
	}
}

func TestDetectOpening_FromBook(t *testing.T) {
	op, err := pgn.DetectOpening(sicilianRecord)
	require.NoError(t, err)

	assert.NotEmpty(t, op.ECO)
	assert.Contains(t, op.Name, "Sicilian")
}

func TestDetectOpening_IllegalMove(t *testing.T) {
	_, err := pgn.DetectOpening("1. e5 e4 *")
	assert.Error(t, err)
}
