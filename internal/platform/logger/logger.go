package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Text output keeps local
// runs readable; GATEPASS_LOG_LEVEL=debug widens it.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("GATEPASS_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
