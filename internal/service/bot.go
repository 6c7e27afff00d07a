package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Best, error)
	BestMove(ctx context.Context, board *entity.Board, player entity.Player) (entity.Best, error)
}

type engine interface {
	Search(board *entity.Board, depth int, player entity.Player) search.Result
	Options() search.Options
}

type evaluationRepo interface {
	Save(ctx context.Context, key string, best entity.Best) error
	GetByKey(ctx context.Context, key string) (entity.Best, error)
	DeleteByKey(ctx context.Context, key string) error
}

type botService struct {
	logger *slog.Logger

	engine         engine
	evaluationRepo evaluationRepo
	maxDepth       int
}

// NewBotService builds the computer player. maxDepth caps the search; 0 searches to the end of the game.
func NewBotService(logger *slog.Logger, engine engine, evaluationRepo evaluationRepo, maxDepth int) BotService {
	return &botService{
		logger:         logger.With("component", "bot"),
		engine:         engine,
		evaluationRepo: evaluationRepo,
		maxDepth:       maxDepth,
	}
}

// MakeTurn picks the computer's move and commits it to the game.
func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Best, error) {
	if game.IsFinished() {
		return entity.Best{}, apperror.ErrGameFinished
	}

	best, err := that.BestMove(ctx, game.Board, entity.Computer)
	if err != nil {
		return entity.Best{}, fmt.Errorf("failed to choose move: %w", err)
	}

	if err = tictactoe.MakeTurn(game, entity.Computer, best.Coord); err != nil {
		return entity.Best{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return best, nil
}

// BestMove returns the move player should make on board. The board is left as it was.
func (that *botService) BestMove(ctx context.Context, board *entity.Board, player entity.Player) (entity.Best, error) {
	log := that.logger.With("method", "BestMove", "board", board.Key(), "player", player.String())

	switch tictactoe.DetermineGameResult(board) {
	case entity.ResultNone:
	case entity.ResultTie:
		return entity.Best{}, apperror.ErrNoAvailableMoves
	default:
		return entity.Best{}, apperror.ErrGameFinished
	}

	depth := len(entity.EmptyCells(board))
	if that.maxDepth > 0 && depth > that.maxDepth {
		depth = that.maxDepth
	}

	key := that.evaluationKey(board, depth, player)

	cached, err := that.evaluationRepo.GetByKey(ctx, key)
	switch {
	case err == nil && entity.IsValidMove(cached.Coord, board):
		log.Debug("evaluation cache hit", "row", cached.Coord.Row, "col", cached.Coord.Col, "score", cached.Score)
		return cached, nil
	case err == nil:
		log.Warn("evicting cached evaluation with unplayable move", "row", cached.Coord.Row, "col", cached.Coord.Col)

		if err = that.evaluationRepo.DeleteByKey(ctx, key); err != nil && !errors.Is(err, repository.ErrEvaluationNotFound) {
			log.Error("failed to evict evaluation", "error", err)
		}
	case !errors.Is(err, repository.ErrEvaluationNotFound):
		log.Error("failed to read evaluation cache", "error", err)
	}

	result := that.engine.Search(board, depth, player)
	log.Debug("search finished",
		"depth", depth,
		"nodes", result.Nodes,
		"row", result.Coord.Row,
		"col", result.Coord.Col,
		"score", result.Score,
	)

	if err = that.evaluationRepo.Save(ctx, key, result.Best); err != nil {
		log.Error("failed to save evaluation", "error", err)
	}

	return result.Best, nil
}

func (that *botService) evaluationKey(board *entity.Board, depth int, player entity.Player) string {
	opts := that.engine.Options()

	return fmt.Sprintf("%t:%t:%s:%d:%s", opts.Pruning, opts.EagerExit, player, depth, board.Key())
}
