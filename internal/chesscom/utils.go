package chesscom

import (
	"strings"

	"github.com/vytor/chessreview/internal/models"
)

// Perspective is a reviewed game seen from one player's side.
type Perspective struct {
	Color    string
	Player   models.PlayerSummary
	Opponent models.PlayerSummary
}

// PlayerPerspective determines which color username played. Games where
// username matches neither side are treated as played with black, the same
// fallback the listing has always used.
func PlayerPerspective(username string, g models.ReviewedGame) Perspective {
	if strings.EqualFold(g.White.Username, username) {
		return Perspective{Color: "white", Player: g.White, Opponent: g.Black}
	}
	return Perspective{Color: "black", Player: g.Black, Opponent: g.White}
}

// ResultLabel maps a chess.com outcome code to Won, Lost or Draw. Codes
// outside the known vocabulary come back unchanged.
func ResultLabel(code string) string {
	switch code {
	case "win":
		return "Won"
	case "checkmated", "timeout", "resigned", "lose", "abandoned":
		return "Lost"
	case "agreed", "repetition", "stalemate", "insufficient", "50move", "timevsinsufficient":
		return "Draw"
	default:
		return code
	}
}
