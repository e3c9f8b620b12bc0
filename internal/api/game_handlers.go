package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/chessreview/internal/logger"
)

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	games, err := s.GameService.ListGames(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("returning %d games", len(games))
	writeJSON(w, r, http.StatusOK, games)
}

func (s *Server) handleGameDetail(w http.ResponseWriter, r *http.Request) {
	game, err := s.GameService.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, game)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Info("sync requested")

	// The run outlives a client disconnect.
	result, err := s.SyncService.Sync(context.WithoutCancel(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("sync done: synced=%d skipped=%d errors=%d", result.Synced, result.Skipped, len(result.Errors))
	writeJSON(w, r, http.StatusOK, result)
}
