// Package logging builds the slog logger used for diagnostics.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/smileynet/register/internal/config"
)

// New builds a slog.Logger writing to w according to cfg.
func New(cfg config.Log, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Open returns the sink for cfg.File, or fallback when no file is set.
// The returned close func is always non-nil.
func Open(cfg config.Log, fallback io.Writer) (io.Writer, func() error, error) {
	if cfg.File == "" {
		return fallback, noClose, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, noClose, fmt.Errorf("logging: creating log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noClose, fmt.Errorf("logging: opening %s: %w", cfg.File, err)
	}
	return f, f.Close, nil
}

func noClose() error { return nil }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
