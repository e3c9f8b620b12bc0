package models

// TimeClass is the game-hosting service's speed category.
type TimeClass string

const (
	TimeClassDaily  TimeClass = "daily"
	TimeClassRapid  TimeClass = "rapid"
	TimeClassBlitz  TimeClass = "blitz"
	TimeClassBullet TimeClass = "bullet"
)

// Participant is one side of a source game as reported by chess.com.
type Participant struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
	ID       string `json:"@id,omitempty"`
	UUID     string `json:"uuid,omitempty"`
}

// SourceGame is a completed game from a monthly archive.
type SourceGame struct {
	URL         string      `json:"url"`
	UUID        string      `json:"uuid"`
	PGN         string      `json:"pgn"`
	TimeControl string      `json:"time_control"`
	TimeClass   TimeClass   `json:"time_class"`
	Rated       bool        `json:"rated"`
	EndTime     int64       `json:"end_time"`
	FEN         string      `json:"fen,omitempty"`
	Rules       string      `json:"rules,omitempty"`
	White       Participant `json:"white"`
	Black       Participant `json:"black"`
}

// ImportResult is what the analysis service hands back for an imported game.
type ImportResult struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	EmbedURL string `json:"embedUrl"`
}

// PlayerSummary is the persisted subset of a Participant.
type PlayerSummary struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
}

// ReviewedGame is the persisted unit: a source game merged with its import.
type ReviewedGame struct {
	ChessComURL  string        `json:"chessComUrl"`
	ChessComUUID string        `json:"chessComUuid"`
	LichessID    string        `json:"lichessId"`
	LichessURL   string        `json:"lichessUrl"`
	EmbedURL     string        `json:"embedUrl"`
	PGN          string        `json:"pgn"`
	TimeControl  string        `json:"timeControl"`
	TimeClass    string        `json:"timeClass"`
	EndTime      int64         `json:"endTime"`
	White        PlayerSummary `json:"white"`
	Black        PlayerSummary `json:"black"`
	ECO          string        `json:"eco,omitempty"`
	Opening      string        `json:"opening,omitempty"`
	SyncedAt     int64         `json:"syncedAt"`
}

// NewReviewedGame merges a source game with its import result. syncedAt is
// milliseconds since the epoch.
func NewReviewedGame(src SourceGame, imp ImportResult, syncedAt int64) ReviewedGame {
	return ReviewedGame{
		ChessComURL:  src.URL,
		ChessComUUID: src.UUID,
		LichessID:    imp.ID,
		LichessURL:   imp.URL,
		EmbedURL:     imp.EmbedURL,
		PGN:          src.PGN,
		TimeControl:  src.TimeControl,
		TimeClass:    string(src.TimeClass),
		EndTime:      src.EndTime,
		White:        summarize(src.White),
		Black:        summarize(src.Black),
		SyncedAt:     syncedAt,
	}
}

func summarize(p Participant) PlayerSummary {
	return PlayerSummary{Username: p.Username, Rating: p.Rating, Result: p.Result}
}

// SyncResult is the summary of one sync pass.
type SyncResult struct {
	Synced  int            `json:"synced"`
	Skipped int            `json:"skipped"`
	Errors  []string       `json:"errors"`
	Games   []ReviewedGame `json:"games"`
}
