// Package logging builds the application's *slog.Logger.
package logging

import (
	"io"
	"log/slog"
)

// New returns a *slog.Logger configured for the given environment,
// writing to w.
//
//	dev (and anything unrecognised): text at DEBUG, for humans
//	staging:                         JSON at DEBUG
//	prod:                            JSON at INFO, for log aggregators
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return NewWithLevel(env, w, slog.LevelInfo)
	default:
		return NewWithLevel(env, w, slog.LevelDebug)
	}
}

// NewWithLevel is New with an explicit minimum level.
func NewWithLevel(env string, w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	switch env {
	case "prod", "staging":
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}
