package logger

import (
	"io"
	"log/slog"
	"os"
)

var log *slog.Logger

func init() {
	configureFromEnv(os.Stderr)
}

// configureFromEnv enables debug logging when DEBUG is set.
func configureFromEnv(w io.Writer) {
	Configure(w, os.Getenv("DEBUG") != "")
}

// Configure replaces the package logger. Report lines own stdout, so the CLI
// points logs at stderr.
func Configure(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(w, opts)
	log = slog.New(handler)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}
