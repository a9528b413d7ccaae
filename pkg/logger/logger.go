// Package logger provides the structured JSON application logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON logger writing to stderr at the given level. Every
// entry is tagged with the service name. Unknown levels fall back to info.
func New(level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler).With("service", "blph")
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(level string) slog.Level {
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
