package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrInvalidInput = errors.New("expected two numbers: column and row")

type gameManager interface {
	StartGame(size int) (*entity.Game, error)
	MakeTurn(ctx context.Context, game *entity.Game, coord entity.Coord) (*entity.Game, error)
}

// Console plays games against the computer over a line-oriented text interface.
type Console struct {
	logger *slog.Logger

	gameManager gameManager
	in          *bufio.Scanner
	out         io.Writer
}

func New(logger *slog.Logger, gameManager gameManager, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),

		gameManager: gameManager,
		in:          bufio.NewScanner(in),
		out:         out,
	}
}

// Run plays rounds until the user declines a replay, the input ends or ctx is canceled.
func (that *Console) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		err := that.playRound(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		that.println("Do you want to play again?")

		answer, err := that.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if !strings.HasPrefix(strings.ToLower(answer), "y") {
			return nil
		}
	}
}

func (that *Console) playRound(ctx context.Context) error {
	game, err := that.startGame()
	if err != nil {
		return err
	}

	that.println("You are X and go first.")

	for {
		that.drawBoard(game.Board)

		game, err = that.personTurn(ctx, game)
		if errors.Is(err, apperror.ErrGameFinished) {
			that.drawBoard(game.Board)
			that.println(resultMessage(game.Winner))

			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (that *Console) startGame() (*entity.Game, error) {
	for {
		that.println("Enter the size of the board.")

		line, err := that.readLine()
		if err != nil {
			return nil, err
		}

		size, err := strconv.Atoi(line)
		if err != nil {
			that.println("Failed parsing the size of the board.", err)
			continue
		}

		game, err := that.gameManager.StartGame(size)
		if err != nil {
			that.println("Failed starting the game.", err)
			continue
		}

		return game, nil
	}
}

// personTurn keeps asking until a move is accepted.
func (that *Console) personTurn(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	for {
		line, err := that.readLine()
		if err != nil {
			return nil, err
		}

		coord, err := ParseMove(line)
		if err != nil {
			that.println("You cannot make that move.")
			continue
		}

		next, err := that.gameManager.MakeTurn(ctx, game, coord)
		switch {
		case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrCellOccupied):
			that.println("You cannot make that move.")
			continue
		case err != nil && !errors.Is(err, apperror.ErrGameFinished):
			that.logger.Error("failed to make turn", "gameID", game.ID, "error", err)
			return nil, fmt.Errorf("failed to make turn: %w", err)
		}

		return next, err
	}
}

func (that *Console) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed reading input: %w", err)
		}

		return "", io.EOF
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func (that *Console) drawBoard(board *entity.Board) {
	_, _ = io.WriteString(that.out, RenderBoard(board))
}

func (that *Console) println(args ...any) {
	_, _ = fmt.Fprintln(that.out, args...)
}

// ParseMove reads "x y", 1-based, where x is the column and y the row.
func ParseMove(line string) (entity.Coord, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return entity.NoCoord, ErrInvalidInput
	}

	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.NoCoord, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.NoCoord, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return entity.Coord{Row: y - 1, Col: x - 1}, nil
}

func RenderBoard(board *entity.Board) string {
	var sb strings.Builder

	for _, row := range board.Rows() {
		for _, cell := range row {
			switch cell {
			case entity.PersonMark:
				sb.WriteString(" X ")
			case entity.ComputerMark:
				sb.WriteString(" O ")
			default:
				sb.WriteString(" - ")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func resultMessage(winner string) string {
	switch winner {
	case entity.ResultPerson:
		return "You won!"
	case entity.ResultComputer:
		return "The computer won!"
	default:
		return "Tie!"
	}
}
