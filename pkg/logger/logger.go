// Package logger builds the zerolog.Logger used throughout genforge.
//
// cmd/genforge builds one logger, after configuration is loaded, through
// logger.New(logger.Config{Level, Pretty}).
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls verbosity and output formatting.
type Config struct {
	Level  string // "debug" | "info" | "warn" | "error"; unknown values fall back to info
	Pretty bool   // human-readable console output instead of JSON lines
}

// New builds a zerolog.Logger writing to stderr, honoring Config.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writer = os.Stderr
	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	if cfg.Pretty {
		console := zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
		logger = zerolog.New(console).Level(level).With().Timestamp().Logger()
	}

	return logger
}
