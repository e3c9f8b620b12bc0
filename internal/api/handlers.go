package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/vytor/chessreview/internal/logger"
	"github.com/vytor/chessreview/internal/services"
)

// ReadyCheck reports whether the game store can serve reads.
type ReadyCheck func(ctx context.Context) error

type Server struct {
	GameService services.GameService
	SyncService services.SyncService
	Ready       ReadyCheck
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
