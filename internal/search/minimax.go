// Package search picks the computer's move with minimax, optionally pruned with alpha-beta.
//
// The board handed to a search is mutated in place while the tree is explored and is
// restored before the search returns, whichever way the loop at a node ends.
package search

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type Options struct {
	// Pruning enables alpha-beta cutoffs.
	Pruning bool
	// EagerExit stops a node as soon as its active player has found a winning move.
	EagerExit bool
}

// Result is the chosen move plus the number of nodes the search visited.
type Result struct {
	entity.Best

	Nodes int
}

// Minimax is stateless between calls and may be shared.
type Minimax struct {
	opts Options
}

func NewMinimax(opts Options) *Minimax {
	return &Minimax{opts: opts}
}

func (that *Minimax) Options() Options {
	return that.opts
}

// Search explores at most depth plies with player to move and returns the best move found.
// Boards that are already decided, full, or searched with depth <= 0 yield entity.NoCoord and their evaluation.
func (that *Minimax) Search(board *entity.Board, depth int, player entity.Player) Result {
	s := &searcher{
		opts:  that.opts,
		board: board,
	}

	best := s.minimax(depth, player, math.Inf(-1), math.Inf(1))

	return Result{Best: best, Nodes: s.nodes}
}

// SearchFull searches to the end of the game.
func (that *Minimax) SearchFull(board *entity.Board, player entity.Player) Result {
	return that.Search(board, len(entity.EmptyCells(board)), player)
}

type searcher struct {
	opts  Options
	board *entity.Board
	nodes int
}

func (that *searcher) minimax(depth int, player entity.Player, alpha, beta float64) entity.Best {
	that.nodes++

	if depth <= 0 || tictactoe.Wins(that.board, entity.Computer) || tictactoe.Wins(that.board, entity.Person) {
		return entity.Best{Coord: entity.NoCoord, Score: tictactoe.Evaluate(that.board)}
	}

	cells := entity.EmptyCells(that.board)
	if len(cells) == 0 {
		return entity.Best{Coord: entity.NoCoord, Score: tictactoe.Evaluate(that.board)}
	}

	best := entity.Best{Coord: entity.NoCoord, Score: initialScore(player)}

	for _, coord := range cells {
		score := that.try(coord, depth, player, alpha, beta)

		// ties keep the earlier move
		if improves(player, score, best.Score) {
			best = entity.Best{Coord: coord, Score: score}
		}

		if that.opts.Pruning {
			if player.Maximizes() {
				alpha = math.Max(alpha, score)
			} else {
				beta = math.Min(beta, score)
			}

			if alpha >= beta {
				break
			}
		}

		if that.opts.EagerExit && best.Score == player.WinScore() {
			break
		}
	}

	return best
}

// try plays coord for player, scores the reply and takes the mark back.
func (that *searcher) try(coord entity.Coord, depth int, player entity.Player, alpha, beta float64) float64 {
	that.board.Set(coord, player.Mark())
	defer that.board.Set(coord, entity.EmptyCell)

	return that.minimax(depth-1, player.Opponent(), alpha, beta).Score
}

func initialScore(player entity.Player) float64 {
	if player.Maximizes() {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

func improves(player entity.Player, score, current float64) bool {
	if player.Maximizes() {
		return score > current
	}
	return score < current
}
