package pgn

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

var headerRe = regexp.MustCompile(`\[(\w+)\s+"([^"]+)"\]`)

// ParsePGNHeaders extracts PGN header tags into a map
func ParsePGNHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = m[2]
		}
	}
	return out
}

var gameIDRe = regexp.MustCompile(`.*/game/[^/]+/([0-9]+)`)

// ExtractGameID extracts the game ID from a chess.com game URL
func ExtractGameID(url string) string {
	m := gameIDRe.FindStringSubmatch(url)
	if len(m) == 2 {
		return m[1]
	}
	return url
}

// Opening is the ECO classification of a game's first moves.
type Opening struct {
	ECO  string
	Name string
}

var book = opening.NewBookECO()

// DetectOpening replays the move record and looks its moves up in the ECO
// book. When the book has no match the ECO header, if any, is returned with
// an empty name.
func DetectOpening(record string) (Opening, error) {
	pgnOpt, err := chess.PGN(strings.NewReader(record))
	if err != nil {
		return Opening{}, fmt.Errorf("parse move record: %w", err)
	}
	game := chess.NewGame(pgnOpt)

	if found := book.Find(game.Moves()); found != nil {
		return Opening{ECO: found.Code(), Name: found.Title()}, nil
	}
	return Opening{ECO: ParsePGNHeaders(record)["ECO"]}, nil
}
