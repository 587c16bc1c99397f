package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// slogLogger adapts a *slog.Logger to the Logger interface.
type slogLogger struct {
	logger *slog.Logger
	exit   func(code int)
}

func newSlogLogger(handler slog.Handler) *slogLogger {
	return &slogLogger{logger: slog.New(handler), exit: os.Exit}
}

// Debug logs a debug message.
func (l *slogLogger) Debug(args ...interface{}) {
	l.log(slog.LevelDebug, args...)
}

// Info logs an informational message.
func (l *slogLogger) Info(args ...interface{}) {
	l.log(slog.LevelInfo, args...)
}

// Warn logs a warning message.
func (l *slogLogger) Warn(args ...interface{}) {
	l.log(slog.LevelWarn, args...)
}

// Error logs an error message.
func (l *slogLogger) Error(args ...interface{}) {
	l.log(slog.LevelError, args...)
}

// Fatal logs a fatal message and exits.
func (l *slogLogger) Fatal(args ...interface{}) {
	l.log(slog.LevelError, args...)
	l.exit(1)
}

// Panic logs a panic message and panics.
func (l *slogLogger) Panic(args ...interface{}) {
	msg, _ := splitArgs(args...)
	l.log(slog.LevelError, args...)
	panic(msg)
}

func (l *slogLogger) log(level slog.Level, args ...interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	msg, attrs := splitArgs(args...)
	l.logger.Log(ctx, level, msg, attrs...)
}

// splitArgs returns the message and the key/value attributes of a log call.
func splitArgs(args ...interface{}) (string, []any) {
	if len(args) > 1 && len(args)%2 == 1 {
		if msg, ok := args[0].(string); ok && keysAreStrings(args[1:]) {
			return msg, args[1:]
		}
	}
	return formatArgs(args...), nil
}

func keysAreStrings(kv []interface{}) bool {
	for i := 0; i < len(kv); i += 2 {
		if _, ok := kv[i].(string); !ok {
			return false
		}
	}
	return true
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}
