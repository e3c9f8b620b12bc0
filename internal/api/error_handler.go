package api

import (
	"net/http"

	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	writeJSON(w, r, appErr.Status, errorResponse{Error: appErr.PublicMessage()})
}
