package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env is the environment configuration of the CLI
type Env struct {
	LogLevel  string `env:"STATELY_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"STATELY_LOG_FORMAT" envDefault:"text"`
	Format    string `env:"STATELY_FORMAT" envDefault:"text"`
}

// ErrParsingEnv wraps failures to decode the environment
var ErrParsingEnv = errors.New("failed to parse environment")

// LoadEnv reads the environment, loading a .env file from the working
// directory first when one exists.
func LoadEnv() (Env, error) {
	// the .env file is optional
	_ = godotenv.Load()

	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, errors.Join(ErrParsingEnv, err)
	}
	return cfg, nil
}

// ParseEnv decodes cfg from an explicit set of variables
func ParseEnv(vars map[string]string) (Env, error) {
	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Env{}, errors.Join(ErrParsingEnv, err)
	}
	return cfg, nil
}

// NewLogger builds the CLI logger writing to w
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be \"json\" or \"text\"", format)
	}
}
