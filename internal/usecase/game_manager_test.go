package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
)

var errSomeError = errors.New("some error")

type mockBotService struct {
	mock.Mock
}

func (that *mockBotService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Best, error) {
	args := that.Called(ctx, game)
	return args.Get(0).(entity.Best), args.Error(1) //nolint: forcetypeassert // test mock
}

func (that *mockBotService) BestMove(ctx context.Context, board *entity.Board, player entity.Player) (entity.Best, error) {
	args := that.Called(ctx, board, player)
	return args.Get(0).(entity.Best), args.Error(1) //nolint: forcetypeassert // test mock
}

func TestGameManager_StartGame(t *testing.T) {
	manager := NewGameManager(suite.NewLogger(), &mockBotService{})

	t.Run("Creates an empty game with the person to move", func(t *testing.T) {
		// When: starting a 4x4 game
		game, err := manager.StartGame(4)

		// Then: the board is empty and the game has an ID
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, 4, game.Board.Size())
		assert.Len(t, entity.EmptyCells(game.Board), 16)
		assert.Equal(t, entity.Person, game.Turn)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Each game gets its own ID", func(t *testing.T) {
		first, err := manager.StartGame(3)
		require.NoError(t, err)
		second, err := manager.StartGame(3)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("Rejects sizes below one", func(t *testing.T) {
		for _, size := range []int{0, -2} {
			game, err := manager.StartGame(size)

			require.ErrorIs(t, err, ErrInvalidBoardSize)
			assert.Nil(t, game)
		}
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Person moves, then the bot answers", func(t *testing.T) {
		// Given: a bot that plays the top right corner
		bot := &mockBotService{}
		manager := NewGameManager(suite.NewLogger(), bot)
		game, err := manager.StartGame(3)
		require.NoError(t, err)

		bot.On("MakeTurn", ctx, game).
			Run(func(args mock.Arguments) {
				g := args.Get(1).(*entity.Game) //nolint: forcetypeassert // test mock
				require.NoError(t, tictactoe.MakeTurn(g, entity.Computer, entity.Coord{Row: 0, Col: 2}))
			}).
			Return(entity.Best{Coord: entity.Coord{Row: 0, Col: 2}}, nil).
			Once()

		// When: the person plays the center
		game, err = manager.MakeTurn(ctx, game, entity.Coord{Row: 1, Col: 1})

		// Then: both marks are on the board and it is the person's turn again
		require.NoError(t, err)
		assert.Equal(t, entity.PersonMark, game.Board.At(entity.Coord{Row: 1, Col: 1}))
		assert.Equal(t, entity.ComputerMark, game.Board.At(entity.Coord{Row: 0, Col: 2}))
		assert.Equal(t, entity.Person, game.Turn)
		bot.AssertExpectations(t)
	})

	t.Run("Invalid move leaves the game untouched", func(t *testing.T) {
		bot := &mockBotService{}
		manager := NewGameManager(suite.NewLogger(), bot)
		game, err := manager.StartGame(3)
		require.NoError(t, err)

		result, err := manager.MakeTurn(ctx, game, entity.Coord{Row: 5, Col: 0})

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Nil(t, result)
		assert.Len(t, entity.EmptyCells(game.Board), 9)
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything, mock.Anything)
	})

	t.Run("Winning person move ends the game without asking the bot", func(t *testing.T) {
		bot := &mockBotService{}
		manager := NewGameManager(suite.NewLogger(), bot)
		game, err := manager.StartGame(1)
		require.NoError(t, err)

		result, err := manager.MakeTurn(ctx, game, entity.Coord{Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, entity.ResultPerson, result.Winner)
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything, mock.Anything)
	})

	t.Run("Bot failure is reported", func(t *testing.T) {
		bot := &mockBotService{}
		manager := NewGameManager(suite.NewLogger(), bot)
		game, err := manager.StartGame(3)
		require.NoError(t, err)

		bot.On("MakeTurn", ctx, game).Return(entity.Best{}, errSomeError).Once()

		result, err := manager.MakeTurn(ctx, game, entity.Coord{Row: 0, Col: 0})

		require.ErrorIs(t, err, errSomeError)
		assert.Nil(t, result)
	})

	t.Run("Move after the game is over", func(t *testing.T) {
		manager := NewGameManager(suite.NewLogger(), &mockBotService{})
		game, err := manager.StartGame(3)
		require.NoError(t, err)
		game.Status = entity.StatusFinished

		result, err := manager.MakeTurn(ctx, game, entity.Coord{Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, game, result)
	})
}

func TestGameManager_FullGame(t *testing.T) {
	ctx := context.Background()

	// Given: a real minimax bot
	bot := service.NewBotService(
		suite.NewLogger(),
		search.NewMinimax(search.Options{Pruning: true, EagerExit: true}),
		repository.NewNopEvaluationRepository(),
		0,
	)
	manager := NewGameManager(suite.NewLogger(), bot)

	game, err := manager.StartGame(3)
	require.NoError(t, err)

	// When: the person always plays the first empty cell
	for {
		var turnErr error
		game, turnErr = manager.MakeTurn(ctx, game, entity.EmptyCells(game.Board)[0])
		if errors.Is(turnErr, apperror.ErrGameFinished) {
			break
		}
		require.NoError(t, turnErr)
	}

	// Then: the computer does not lose
	assert.True(t, game.IsFinished())
	assert.NotEqual(t, entity.ResultPerson, game.Winner)
}

func TestGameManager_SuggestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Passes the analysis through", func(t *testing.T) {
		bot := &mockBotService{}
		manager := NewGameManager(suite.NewLogger(), bot)
		board := entity.NewBoard(3)
		want := entity.Best{Coord: entity.Coord{Row: 1, Col: 1}, Score: entity.ScoreTie}

		bot.On("BestMove", ctx, board, entity.Person).Return(want, nil).Once()

		best, err := manager.SuggestMove(ctx, board, entity.Person)

		require.NoError(t, err)
		assert.Equal(t, want, best)
	})

	t.Run("Wraps bot errors", func(t *testing.T) {
		bot := &mockBotService{}
		manager := NewGameManager(suite.NewLogger(), bot)
		board := entity.NewBoard(3)

		bot.On("BestMove", ctx, board, entity.Computer).Return(entity.Best{}, apperror.ErrNoAvailableMoves).Once()

		_, err := manager.SuggestMove(ctx, board, entity.Computer)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})
}
