package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	l := New(w, level)
	slog.SetDefault(l)
	return l
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
