package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New builds a structured logger writing to stdout.
// level is one of debug, info, warn, error; format is json or text.
func New(level string, format ...string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	if len(format) > 0 && strings.EqualFold(format[0], "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
