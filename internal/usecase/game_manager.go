package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrInvalidBoardSize = errors.New("board size must be at least 1")

type botService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Best, error)
	BestMove(ctx context.Context, board *entity.Board, player entity.Player) (entity.Best, error)
}

// GameManager runs games between a person and the computer.
type GameManager struct {
	logger *slog.Logger

	botService botService
}

func NewGameManager(logger *slog.Logger, botService botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		botService: botService,
	}
}

func (that *GameManager) StartGame(size int) (*entity.Game, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBoardSize, size)
	}

	game := entity.NewGame(uuid.NewString(), size)

	that.logger.Info("game started", "gameID", game.ID, "size", size)

	return game, nil
}

// MakeTurn plays the person's move and, if the game goes on, the computer's answer.
// Once the game is over the game is returned together with apperror.ErrGameFinished.
func (that *GameManager) MakeTurn(ctx context.Context, game *entity.Game, coord entity.Coord) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if err := tictactoe.MakeTurn(game, entity.Person, coord); err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			return game, apperror.ErrGameFinished
		}

		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)

		return game, apperror.ErrGameFinished
	}

	best, err := that.botService.MakeTurn(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("computer moved", "row", best.Coord.Row, "col", best.Coord.Col, "score", best.Score)

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)

		return game, apperror.ErrGameFinished
	}

	return game, nil
}

// SuggestMove analyses board for player without committing anything.
func (that *GameManager) SuggestMove(ctx context.Context, board *entity.Board, player entity.Player) (entity.Best, error) {
	best, err := that.botService.BestMove(ctx, board, player)
	if err != nil {
		return entity.Best{}, fmt.Errorf("failed to suggest move: %w", err)
	}

	return best, nil
}
