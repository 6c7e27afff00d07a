package tictactoe

import "github.com/rocketscienceinc/tictactoe-minimax/internal/entity"

// Wins reports whether player owns every cell of some row, column or diagonal.
func Wins(board *entity.Board, player entity.Player) bool {
	size := board.Size()
	if size == 0 {
		return false
	}

	mark := player.Mark()

	for row := 0; row < size; row++ {
		if winLine(board, mark, func(i int) entity.Coord { return entity.Coord{Row: row, Col: i} }) {
			return true
		}
	}

	for col := 0; col < size; col++ {
		if winLine(board, mark, func(i int) entity.Coord { return entity.Coord{Row: i, Col: col} }) {
			return true
		}
	}

	if winLine(board, mark, func(i int) entity.Coord { return entity.Coord{Row: i, Col: i} }) {
		return true
	}

	return winLine(board, mark, func(i int) entity.Coord { return entity.Coord{Row: i, Col: size - 1 - i} })
}

// winLine walks the size cells produced by at and stops at the first one not matching mark.
func winLine(board *entity.Board, mark entity.Cell, at func(i int) entity.Coord) bool {
	for i := 0; i < board.Size(); i++ {
		if board.At(at(i)) != mark {
			return false
		}
	}

	return true
}

// Evaluate scores a board from the computer's side: +1 computer line, -1 person line, 0 otherwise.
// The computer's line is looked for first.
func Evaluate(board *entity.Board) float64 {
	switch {
	case Wins(board, entity.Computer):
		return entity.ScoreComputerWin
	case Wins(board, entity.Person):
		return entity.ScorePersonWin
	default:
		return entity.ScoreTie
	}
}

// DetermineGameResult names the winner, ResultTie for a full undecided board, or ResultNone while play continues.
func DetermineGameResult(board *entity.Board) string {
	switch {
	case Wins(board, entity.Computer):
		return entity.ResultComputer
	case Wins(board, entity.Person):
		return entity.ResultPerson
	case len(entity.EmptyCells(board)) == 0:
		return entity.ResultTie
	default:
		return entity.ResultNone
	}
}
