// Package logger builds the application's slog logger.
package logger

import (
	"io"
	"log/slog"

	"github.com/naka-gawa/gitissues/internal/config"
)

// New returns a logger writing to w. verbose forces debug level regardless of cfg.
func New(w io.Writer, cfg config.LogConfig, verbose bool) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
