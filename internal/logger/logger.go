package logger

import (
	"log/slog"
	"os"
)

func Load() *slog.Logger {
	opts := &slog.HandlerOptions{Level: level()}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func level() slog.Level {
	if os.Getenv("LOG_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
