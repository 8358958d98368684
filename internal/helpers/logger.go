package helpers

import (
	"io"
	"log/slog"
)

// NewNoopLogger returns a logger that discards all records. Used as the
// default in constructors that accept an optional logger.
func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
