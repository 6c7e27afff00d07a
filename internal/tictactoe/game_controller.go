package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// MakeTurn commits a move for player. The board is left untouched when the move is rejected.
func MakeTurn(gameInstance *entity.Game, player entity.Player, coord entity.Coord) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance, player, coord); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board.Set(coord, player.Mark())
	updateGameStatus(gameInstance, player)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, player entity.Player, coord entity.Coord) error {
	if !gameInstance.Board.InBounds(coord) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, coord.Row, coord.Col)
	}

	if gameInstance.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if !entity.IsValidMove(coord, gameInstance.Board) {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, player entity.Player) {
	switch result := DetermineGameResult(gameInstance.Board); result {
	case entity.ResultPerson, entity.ResultComputer, entity.ResultTie:
		gameInstance.Winner = result
		gameInstance.Status = entity.StatusFinished
	default:
		gameInstance.Turn = player.Opponent()
	}
}
