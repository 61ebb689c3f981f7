package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return that.Called(ctx, game).Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	return that.Called(ctx, id).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (that *mockPublisher) Publish(gameID string, event *Event) {
	that.Called(gameID, event)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newManager(t *testing.T) (*GameManager, *mockPublisher) {
	t.Helper()

	pub := &mockPublisher{}
	t.Cleanup(func() { pub.AssertExpectations(t) })

	return NewGameManager(discardLogger(), repository.NewMemoryGameRepository(), pub, entity.DefaultHeight, entity.DefaultWidth), pub
}

func TestGameManager_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies defaults", func(t *testing.T) {
		// Given: a manager with the default board size
		manager, _ := newManager(t)

		// When: a game is created without parameters
		game, err := manager.CreateGame(ctx, NewGameParams{})

		// Then: default colors and size are used and the game is stored
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, DefaultFirstColor, game.Participants[0].Color)
		assert.Equal(t, DefaultSecondColor, game.Participants[1].Color)
		assert.Equal(t, entity.DefaultHeight, game.Board.Height)
		assert.Equal(t, entity.DefaultWidth, game.Board.Width)

		stored, err := manager.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Uses requested colors and size", func(t *testing.T) {
		manager, _ := newManager(t)

		game, err := manager.CreateGame(ctx, NewGameParams{FirstColor: "blue", SecondColor: "green", Height: 4, Width: 5})

		require.NoError(t, err)
		assert.Equal(t, "blue", game.Participants[0].Color)
		assert.Equal(t, 4, game.Board.Height)
		assert.Equal(t, 5, game.Board.Width)
	})

	t.Run("Rejects identical colors", func(t *testing.T) {
		manager, _ := newManager(t)

		_, err := manager.CreateGame(ctx, NewGameParams{FirstColor: "blue", SecondColor: "blue"})

		assert.ErrorIs(t, err, apperror.ErrInvalidParticipants)
	})

	t.Run("Rejects invalid size", func(t *testing.T) {
		manager, _ := newManager(t)

		_, err := manager.CreateGame(ctx, NewGameParams{Height: -2})

		assert.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
	})

	t.Run("Returns storage errors", func(t *testing.T) {
		// Given: a repository that fails to save
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()
		manager := NewGameManager(discardLogger(), repo, nil, entity.DefaultHeight, entity.DefaultWidth)

		// When: a game is created
		game, err := manager.CreateGame(ctx, NewGameParams{})

		// Then: the storage error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
		repo.AssertExpectations(t)
	})
}

func TestGameManager_MakeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and publishes an accepted move", func(t *testing.T) {
		// Given: a new game
		manager, pub := newManager(t)
		game, err := manager.CreateGame(ctx, NewGameParams{})
		require.NoError(t, err)

		pub.On("Publish", game.ID, mock.MatchedBy(func(event *Event) bool {
			return event.Type == EventMove && event.Result.Outcome == connectfour.OutcomePlaced
		})).Once()

		// When: player 1 plays column 2
		updated, result, err := manager.MakeMove(ctx, game.ID, 2)

		// Then: the move is stored and the turn switches
		require.NoError(t, err)
		assert.Equal(t, connectfour.OutcomePlaced, result.Outcome)
		assert.Equal(t, entity.Player2, updated.Turn)

		stored, err := manager.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.Player1, stored.Board.At(entity.DefaultHeight-1, 2))
	})

	t.Run("Rejected move is returned as error and not stored", func(t *testing.T) {
		// Given: a new game
		manager, _ := newManager(t)
		game, err := manager.CreateGame(ctx, NewGameParams{})
		require.NoError(t, err)

		// When: an out of range column is played
		_, result, err := manager.MakeMove(ctx, game.ID, 42)

		// Then: the rejection is reported and the game is unchanged
		require.ErrorIs(t, err, apperror.ErrInvalidColumn)
		assert.True(t, result.IsRejected())

		stored, err := manager.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game, stored)
	})

	t.Run("Game over after a win", func(t *testing.T) {
		// Given: a game player 1 wins vertically
		manager, pub := newManager(t)
		game, err := manager.CreateGame(ctx, NewGameParams{})
		require.NoError(t, err)
		pub.On("Publish", game.ID, mock.Anything).Times(7)

		var result connectfour.MoveResult
		for _, column := range []int{0, 1, 0, 1, 0, 1, 0} {
			_, result, err = manager.MakeMove(ctx, game.ID, column)
			require.NoError(t, err)
		}
		require.Equal(t, connectfour.OutcomePlacedAndWon, result.Outcome)

		// When: another move is attempted
		_, result, err = manager.MakeMove(ctx, game.ID, 3)

		// Then: the game is already over
		require.ErrorIs(t, err, apperror.ErrGameAlreadyOver)
		assert.True(t, result.IsRejected())
	})

	t.Run("Unknown game", func(t *testing.T) {
		manager, _ := newManager(t)

		_, _, err := manager.MakeMove(ctx, "missing", 0)

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Storage failure on update", func(t *testing.T) {
		// Given: a repository that loads a game but fails to save it
		board, err := entity.NewBoard(entity.DefaultHeight, entity.DefaultWidth)
		require.NoError(t, err)

		repo := &mockGameRepo{}
		repo.On("GetByID", mock.Anything, "g1").Return(entity.NewGame("g1", board, "red", "yellow"), nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()
		manager := NewGameManager(discardLogger(), repo, nil, entity.DefaultHeight, entity.DefaultWidth)

		// When: a move is made
		game, _, err := manager.MakeMove(ctx, "g1", 0)

		// Then: the storage error is returned
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
		repo.AssertExpectations(t)
	})
}

func TestGameManager_RestartGame(t *testing.T) {
	ctx := context.Background()

	// Given: a game with a move on a custom board
	manager, pub := newManager(t)
	game, err := manager.CreateGame(ctx, NewGameParams{FirstColor: "blue", SecondColor: "green", Height: 5, Width: 6})
	require.NoError(t, err)

	pub.On("Publish", game.ID, mock.Anything).Once()
	_, _, err = manager.MakeMove(ctx, game.ID, 0)
	require.NoError(t, err)

	pub.On("Publish", game.ID, mock.MatchedBy(func(event *Event) bool {
		return event.Type == EventRestart && event.NextGameID != ""
	})).Once()

	// When: the game is restarted
	next, err := manager.RestartGame(ctx, game.ID)

	// Then: a new empty game with the same participants replaces the old one
	require.NoError(t, err)
	assert.NotEqual(t, game.ID, next.ID)
	assert.Equal(t, game.Participants, next.Participants)
	assert.Equal(t, 5, next.Board.Height)
	assert.Equal(t, 6, next.Board.Width)
	assert.Zero(t, next.MoveCount)
	assert.Equal(t, entity.Player1, next.Turn)

	_, err = manager.GetGame(ctx, game.ID)
	require.ErrorIs(t, err, apperror.ErrGameNotFound)
}

func TestGameManager_AbandonGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the game", func(t *testing.T) {
		manager, pub := newManager(t)
		game, err := manager.CreateGame(ctx, NewGameParams{})
		require.NoError(t, err)
		pub.On("Publish", game.ID, mock.MatchedBy(func(event *Event) bool {
			return event.Type == EventAbandon
		})).Once()

		require.NoError(t, manager.AbandonGame(ctx, game.ID))

		_, err = manager.GetGame(ctx, game.ID)
		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Unknown game", func(t *testing.T) {
		manager, _ := newManager(t)

		err := manager.AbandonGame(ctx, "missing")

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}
