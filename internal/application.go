package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/console"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
)

const shutdownTimeout = 5 * time.Second

var (
	ErrAddrNotFound = errors.New("redis address string is empty")
	ErrUnknownMode  = errors.New("unknown application mode")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	evaluationRepo, closeRepo, err := initEvaluationRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	engine := search.NewMinimax(search.Options{
		Pruning:   conf.Search.Pruning,
		EagerExit: conf.Search.EagerExit,
	})
	botService := service.NewBotService(logger, engine, evaluationRepo, conf.Search.MaxDepth)
	gameManager := usecase.NewGameManager(logger, botService)

	switch conf.Mode {
	case config.ModeConsole:
		return runConsole(ctx, logger, gameManager)
	case config.ModeServer:
		return runServer(ctx, logger, gameManager, conf.HTTPPort, conf.Search.MaxBoardSize)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, conf.Mode)
	}
}

func initEvaluationRepository(
	ctx context.Context,
	log *slog.Logger,
	conf *config.Config,
) (repository.EvaluationRepository, func(), error) {
	if !conf.Redis.Enabled {
		log.Info("Evaluation cache disabled")
		return repository.NewNopEvaluationRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewEvaluationRepository(redisStorage, conf.Redis.TTL), closeFn, nil
}

func runConsole(ctx context.Context, logger *slog.Logger, gameManager *usecase.GameManager) error {
	// reading stdin cannot be interrupted, so a signal abandons the blocked read
	consoleErrCh := make(chan error, 1)
	go func() {
		consoleErrCh <- console.New(logger, gameManager, os.Stdin, os.Stdout).Run(ctx)
	}()

	select {
	case err := <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}
		return nil
	case <-ctx.Done():
		return nil
	}
}

func runServer(
	ctx context.Context,
	logger *slog.Logger,
	gameManager *usecase.GameManager,
	port string,
	maxBoardSize int,
) error {
	log := logger.With("component", "app")
	server := rest.New(logger, gameManager, maxBoardSize)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		if httpErr := server.Start(port); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
