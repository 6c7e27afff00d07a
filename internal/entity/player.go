package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// Player is one of the two sides. The values double as their board marks.
type Player int8

const (
	Person   Player = -1
	Computer Player = 1
)

const (
	ScorePersonWin   = -1.0
	ScoreTie         = 0.0
	ScoreComputerWin = 1.0
)

func (that Player) Opponent() Player {
	if that == Computer {
		return Person
	}
	return Computer
}

func (that Player) Mark() Cell {
	return Cell(that)
}

// Maximizes reports whether the player is the maximizing side of the search.
func (that Player) Maximizes() bool {
	return that == Computer
}

// WinScore is the evaluation of a board this player has won.
func (that Player) WinScore() float64 {
	if that == Computer {
		return ScoreComputerWin
	}
	return ScorePersonWin
}

func (that Player) String() string {
	switch that {
	case Person:
		return "person"
	case Computer:
		return "computer"
	default:
		return fmt.Sprintf("player(%d)", int8(that))
	}
}

func ParsePlayer(value string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "person", "human":
		return Person, nil
	case "computer", "bot":
		return Computer, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, value)
	}
}

// Best is a move together with its predicted outcome from the computer's point of view.
type Best struct {
	Coord Coord   `json:"coord"`
	Score float64 `json:"score"`
}
