package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell coordinate")
	ErrInvalidBoard     = errors.New("board must be a non-empty square grid")
	ErrInvalidPlayer    = errors.New("unknown player")
	ErrNoAvailableMoves = errors.New("no available moves")
)
