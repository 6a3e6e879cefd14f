package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"fair_rps/internal/fairness"
	"fair_rps/internal/game"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"false"`

	// Game
	KeyBytes int           `env:"KEY_BYTES" envDefault:"32"`
	Moves    []string      `env:"MOVES" envSeparator:"," envDefault:"rock,paper,scissors"`
	RoundTTL time.Duration `env:"ROUND_TTL" envDefault:"10m"`
	MaxMoves int           `env:"MAX_MOVES" envDefault:"101"`
	// MaxBodyBytes caps JSON request bodies
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Redis is optional; rounds and rate limits fall back to memory
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	APIRateLimit  int           `env:"API_RATE_LIMIT" envDefault:"60"`
	APIRateWindow time.Duration `env:"API_RATE_WINDOW" envDefault:"1m"`

	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.KeyBytes < fairness.MinKeyBytes {
		return fmt.Errorf("KEY_BYTES must be at least %d, got %d", fairness.MinKeyBytes, c.KeyBytes)
	}
	if _, err := game.NewMoveSet(c.Moves); err != nil {
		return fmt.Errorf("MOVES: %w", err)
	}
	if c.MaxMoves < len(c.Moves) {
		return fmt.Errorf("MAX_MOVES (%d) must be at least the number of MOVES (%d)", c.MaxMoves, len(c.Moves))
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.RoundTTL <= 0 {
		return fmt.Errorf("ROUND_TTL must be positive, got %s", c.RoundTTL)
	}
	if c.APIRateLimit <= 0 || c.APIRateWindow <= 0 {
		return fmt.Errorf("API_RATE_LIMIT and API_RATE_WINDOW must be positive")
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
