package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessreview/internal/models"
)

// MockImporter is a mock implementation of lichess.Importer
type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) ImportGame(ctx context.Context, pgn string) (models.ImportResult, error) {
	args := m.Called(ctx, pgn)
	return args.Get(0).(models.ImportResult), args.Error(1)
}
