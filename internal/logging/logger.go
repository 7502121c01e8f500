package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"

	"github.com/Asad-28/weather-app/internal/config"
)

// outcomeTimeFormat mirrors the asctime layout of classic line-oriented logs.
const outcomeTimeFormat = "2006-01-02 15:04:05,000"

func New(w io.Writer, cfg config.Config, version string, appName string) *slog.Logger {
	if version == "dev" {
		h := tint.NewHandler(w, &tint.Options{
			Level:      cfg.LogLevel,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
		return slog.New(h).With("app", appName)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})
	return slog.New(h).With(
		"app", appName,
		"version", version,
		"env", cfg.AppEnv,
	)
}

// NewOutcomeLogger returns the logger that records one line per fetch attempt:
// timestamp, level and message, no colour.
func NewOutcomeLogger(w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: outcomeTimeFormat,
		NoColor:    true,
	}))
}

// OpenOutcomeLog opens path for appending (creating it and its directory if
// needed) and returns an outcome logger writing to it. The caller closes the
// returned io.Closer on shutdown.
func OpenOutcomeLog(path string) (*slog.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open outcome log: %w", err)
	}
	return NewOutcomeLogger(f), f, nil
}
