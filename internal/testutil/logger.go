package testutil

import (
	"io"
	"log/slog"

	"github.com/dtroode/bookswap-agent/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}

// MakeCaptureLogger returns a debug-level text logger writing to w, for
// tests that assert on log lines.
func MakeCaptureLogger(w io.Writer) *logger.Logger {
	return logger.NewWithWriter(w, int(slog.LevelDebug), "text")
}
