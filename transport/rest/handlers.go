package rest

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrBoardTooLarge = errors.New("board is too large to search")

type moveRequest struct {
	Board  *entity.Board `json:"board"`
	Player string        `json:"player"`
}

type moveResponse struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Score float64 `json:"score"`
}

type statusRequest struct {
	Board *entity.Board `json:"board"`
}

type statusResponse struct {
	Result string `json:"result"`
}

// move answers with the best move for the requested player on the posted board.
func (that *Server) move(c *fiber.Ctx) error {
	log := that.logger.With("method", "move")

	var payload moveRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if payload.Board == nil {
		return badRequest(c, apperror.ErrInvalidBoard.Error())
	}

	if that.maxBoardSize > 0 && payload.Board.Size() > that.maxBoardSize {
		return badRequest(c, fmt.Sprintf("%s: size %d, limit %d", ErrBoardTooLarge, payload.Board.Size(), that.maxBoardSize))
	}

	player, err := entity.ParsePlayer(payload.Player)
	if err != nil {
		return badRequest(c, err.Error())
	}

	best, err := that.gameManager.SuggestMove(c.UserContext(), payload.Board, player)
	if err != nil {
		if errors.Is(err, apperror.ErrGameFinished) || errors.Is(err, apperror.ErrNoAvailableMoves) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		log.Error("failed to suggest move", "error", err)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(moveResponse{
		Row:   best.Coord.Row,
		Col:   best.Coord.Col,
		Score: best.Score,
	})
}

func (that *Server) status(c *fiber.Ctx) error {
	var payload statusRequest
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if payload.Board == nil {
		return badRequest(c, apperror.ErrInvalidBoard.Error())
	}

	return c.Status(fiber.StatusOK).JSON(statusResponse{
		Result: tictactoe.DetermineGameResult(payload.Board),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
