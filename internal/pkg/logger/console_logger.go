package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
)

// NewConsoleLogger creates a text logger on stdout or stderr with the specified log level.
func NewConsoleLogger(level, output string) Logger {
	var w io.Writer = os.Stdout
	if output == config.LogOutputStderr {
		w = os.Stderr
	}
	return NewWriterLogger(level, w)
}

// NewWriterLogger creates a text logger writing to w.
func NewWriterLogger(level string, w io.Writer) Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	return newSlogLogger(slog.NewTextHandler(w, opts))
}
