package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessreview/internal/models"
)

// MockGameStore is a mock implementation of repository.GameStore
type MockGameStore struct {
	mock.Mock
}

func (m *MockGameStore) List(ctx context.Context) ([]models.ReviewedGame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewedGame), args.Error(1)
}

func (m *MockGameStore) Get(ctx context.Context, lichessID string) (*models.ReviewedGame, error) {
	args := m.Called(ctx, lichessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewedGame), args.Error(1)
}

func (m *MockGameStore) Has(ctx context.Context, sourceID string) (bool, error) {
	args := m.Called(ctx, sourceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameStore) Save(ctx context.Context, game models.ReviewedGame) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}
