package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/chessreview/internal/errors"
	"github.com/vytor/chessreview/internal/models"
	"github.com/vytor/chessreview/internal/services"
	"github.com/vytor/chessreview/internal/testutil"
	"github.com/vytor/chessreview/internal/testutil/mocks"
)

type GameServiceTestSuite struct {
	suite.Suite
	store   *mocks.MockGameStore
	service services.GameService
	ctx     context.Context
}

func (s *GameServiceTestSuite) SetupTest() {
	s.store = new(mocks.MockGameStore)
	s.service = services.NewGameService(s.store)
	s.ctx = context.Background()
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.store.AssertExpectations(s.T())
}

func (s *GameServiceTestSuite) TestListGames() {
	game := models.NewReviewedGame(testutil.SourceGame("a", 1), testutil.ImportResult("a"), 1)
	s.store.On("List", s.ctx).Return([]models.ReviewedGame{game}, nil)

	games, err := s.service.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 1)
	s.Equal("lia", games[0].LichessID)
}

func (s *GameServiceTestSuite) TestListGames_StoreError() {
	s.store.On("List", s.ctx).Return(nil, stderrors.New("unreadable"))

	_, err := s.service.ListGames(s.ctx)
	s.Require().Error(err)
	s.ErrorIs(err, errors.ErrStorage)
}

func (s *GameServiceTestSuite) TestGetGame() {
	game := models.NewReviewedGame(testutil.SourceGame("a", 1), testutil.ImportResult("a"), 1)
	s.store.On("Get", s.ctx, "lia").Return(&game, nil)

	got, err := s.service.GetGame(s.ctx, "lia")
	s.Require().NoError(err)
	s.Equal("a", got.ChessComUUID)
}

func (s *GameServiceTestSuite) TestGetGame_NotFound() {
	s.store.On("Get", s.ctx, "missing").Return(nil, nil)

	_, err := s.service.GetGame(s.ctx, "missing")
	s.Require().Error(err)
	s.ErrorIs(err, errors.ErrNotFound)
}

func TestGameServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func TestGetGame_EmptyID(t *testing.T) {
	store := new(mocks.MockGameStore)
	_, err := services.NewGameService(store).GetGame(context.Background(), "")

	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
