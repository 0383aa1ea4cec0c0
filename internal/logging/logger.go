// Package logging builds the process logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/gradebook/internal/config"
)

// New creates a logger writing to w.
//
// The format is text unless cfg.Format is "json". verbose forces the Debug
// level regardless of cfg.Level.
func New(w io.Writer, cfg config.LoggingConfig, verbose bool) *slog.Logger {
	level := parseLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
// Defaults to info if unrecognised.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
