package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns an slog logger that discards everything, for tests
// that do not assert on log output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
