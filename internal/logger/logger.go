package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a slog.Logger writing JSON records, with the level derived
// from the application environment.
func New(env string) *slog.Logger {
	handler := slog.NewJSONHandler(defaultWriter(), &slog.HandlerOptions{
		Level: parseLevel(env),
	})
	return slog.New(handler).With("service", "mnmarketlink")
}

func defaultWriter() io.Writer {
	return os.Stdout
}

func parseLevel(env string) slog.Level {
	switch env {
	case "production", "staging":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
