// Package logging builds the slog loggers used by the fxrender host.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. debug lowers the level to
// slog.LevelDebug. The returned LevelVar can change the level later.
func New(w io.Writer, debug bool) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	SetDebug(level, debug)

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler), level
}

// SetDebug switches level between debug and info.
func SetDebug(level *slog.LevelVar, debug bool) {
	if debug {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// Module scopes logger to a named module. A nil logger yields Discard.
func Module(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = Discard()
	}

	return logger.With("module", name)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
