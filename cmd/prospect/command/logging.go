package command

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// newLogger returns a text logger tagged with a fresh run id.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run", uuid.NewString())
}
