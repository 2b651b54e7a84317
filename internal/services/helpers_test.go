package services

import (
	"io"
	"log/slog"

	"github.com/ekazarova/rolodex/internal/logging"
)

// discardLogger returns a Logger that drops everything.
func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
