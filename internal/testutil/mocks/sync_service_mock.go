package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessreview/internal/models"
)

// MockSyncService is a mock implementation of services.SyncService
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Sync(ctx context.Context) (*models.SyncResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SyncResult), args.Error(1)
}
