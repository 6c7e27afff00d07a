package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultMaxBoardSize = 4

const (
	ModeConsole = "console"
	ModeServer  = "server"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode     string `yaml:"mode" env:"MODE" env-default:"console"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Search   Search `yaml:"search"`
	Redis    Redis  `yaml:"redis"`
}

type Search struct {
	Pruning   bool `yaml:"pruning" env:"SEARCH_PRUNING"`
	EagerExit bool `yaml:"eager-exit" env:"SEARCH_EAGER_EXIT"`
	// MaxDepth caps the search depth, 0 searches to the end of the game.
	MaxDepth int `yaml:"max-depth" env:"SEARCH_MAX_DEPTH" env-default:"0"`
	// MaxBoardSize is the largest board the HTTP API will search, 0 disables the check.
	MaxBoardSize int `yaml:"max-board-size" env:"SEARCH_MAX_BOARD_SIZE"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file, falling back to the environment when the file is missing.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	// cleanenv applies env-default to any zero value, so defaults that a file may set to zero are set up front.
	config := &Config{
		Search: Search{Pruning: true, EagerExit: true, MaxBoardSize: defaultMaxBoardSize},
	}

	err := cleanenv.ReadConfig(path, config)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Mode != ModeConsole && config.Mode != ModeServer {
		return nil, fmt.Errorf("unknown mode %q", config.Mode)
	}

	if config.Search.MaxDepth < 0 {
		return nil, fmt.Errorf("search max-depth must not be negative, got %d", config.Search.MaxDepth)
	}

	if config.Search.MaxBoardSize < 0 {
		return nil, fmt.Errorf("search max-board-size must not be negative, got %d", config.Search.MaxBoardSize)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
