package logger

import (
	"log/slog"
	"os"
)

// New returns the structured logger used across services and handlers.
// Level defaults to info; set PRIMELAB_LOG_LEVEL=debug for trace-heavy runs.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("PRIMELAB_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
