package rest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type gameManager interface {
	SuggestMove(ctx context.Context, board *entity.Board, player entity.Player) (entity.Best, error)
}

// Server exposes the engine over HTTP. It keeps no game state between requests.
type Server struct {
	logger *slog.Logger

	app          *fiber.App
	gameManager  gameManager
	maxBoardSize int
}

// New builds the HTTP server. Boards larger than maxBoardSize are refused before searching; 0 accepts any size.
func New(logger *slog.Logger, gameManager gameManager, maxBoardSize int) *Server {
	server := &Server{
		logger: logger.With("component", "rest"),

		app: fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           10 * time.Second,
			WriteTimeout:          10 * time.Second,
			IdleTimeout:           30 * time.Second,
		}),
		gameManager:  gameManager,
		maxBoardSize: maxBoardSize,
	}

	server.setupRoutes()

	return server
}

func (that *Server) setupRoutes() {
	that.app.Get("/ping", that.ping)

	apiGroup := that.app.Group("/api")
	apiGroup.Post("/move", that.move)
	apiGroup.Post("/status", that.status)
}

func (that *Server) App() *fiber.App {
	return that.app
}

// Start blocks until the server stops.
func (that *Server) Start(port string) error {
	that.logger.Info("Starting HTTP server", "port", port)

	if err := that.app.Listen(":" + port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
