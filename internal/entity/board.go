package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

type Cell int8

const (
	EmptyCell    Cell = 0
	PersonMark   Cell = -1
	ComputerMark Cell = 1
)

// Coord is a zero-based (row, column) pair.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoCoord is returned by searches that stopped before choosing a move.
var NoCoord = Coord{Row: -1, Col: -1}

// Board is a square grid of cells stored row by row.
type Board struct {
	size  int
	cells []Cell
}

// NewBoard returns an empty size×size board. A non-positive size gives the 0×0 board.
func NewBoard(size int) *Board {
	if size < 0 {
		size = 0
	}

	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// BoardFromRows builds a board from its rows, rejecting anything that is not a square grid of known cell values.
func BoardFromRows(rows [][]Cell) (*Board, error) {
	size := len(rows)
	if size == 0 {
		return nil, apperror.ErrInvalidBoard
	}

	board := NewBoard(size)
	for row, line := range rows {
		if len(line) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidBoard, row, len(line), size)
		}

		for col, cell := range line {
			if cell != EmptyCell && cell != PersonMark && cell != ComputerMark {
				return nil, fmt.Errorf("%w: cell (%d, %d) has value %d", apperror.ErrInvalidBoard, row, col, cell)
			}
			board.cells[row*size+col] = cell
		}
	}

	return board, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) InBounds(coord Coord) bool {
	return coord.Row >= 0 && coord.Row < that.size && coord.Col >= 0 && coord.Col < that.size
}

func (that *Board) At(coord Coord) Cell {
	return that.cells[coord.Row*that.size+coord.Col]
}

func (that *Board) Set(coord Coord, cell Cell) {
	that.cells[coord.Row*that.size+coord.Col] = cell
}

func (that *Board) Clone() *Board {
	cells := make([]Cell, len(that.cells))
	copy(cells, that.cells)

	return &Board{size: that.size, cells: cells}
}

func (that *Board) Equal(other *Board) bool {
	if other == nil || that.size != other.size {
		return false
	}

	for i, cell := range that.cells {
		if other.cells[i] != cell {
			return false
		}
	}

	return true
}

func (that *Board) Rows() [][]Cell {
	rows := make([][]Cell, that.size)
	for row := range rows {
		rows[row] = make([]Cell, that.size)
		copy(rows[row], that.cells[row*that.size:(row+1)*that.size])
	}

	return rows
}

// Key encodes the board as rows of '.', 'x' (person) and 'o' (computer) separated by '/'.
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(len(that.cells) + that.size)

	for i, cell := range that.cells {
		if i > 0 && i%that.size == 0 {
			sb.WriteByte('/')
		}

		switch cell {
		case PersonMark:
			sb.WriteByte('x')
		case ComputerMark:
			sb.WriteByte('o')
		default:
			sb.WriteByte('.')
		}
	}

	return sb.String()
}

func (that *Board) String() string {
	return that.Key()
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Rows())
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board rows: %w", err)
	}

	board, err := BoardFromRows(rows)
	if err != nil {
		return err
	}

	*that = *board

	return nil
}

// EmptyCells lists every empty coordinate in row-major order.
func EmptyCells(board *Board) []Coord {
	cells := make([]Coord, 0, len(board.cells))
	for i, cell := range board.cells {
		if cell == EmptyCell {
			cells = append(cells, Coord{Row: i / board.size, Col: i % board.size})
		}
	}

	return cells
}

// IsValidMove reports whether coord is on the board and still empty.
func IsValidMove(coord Coord, board *Board) bool {
	return board.InBounds(coord) && board.At(coord) == EmptyCell
}
