package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// newLogger builds the process logger. The TUI owns the terminal, so logs
// go only to path; with no path they are discarded.
func newLogger(path, level string) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(f).Level(lvl).With().Timestamp().Str("component", "reveal").Logger()
	return logger, f.Close, nil
}
