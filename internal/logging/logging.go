// Package logging builds the process logger from the logging config section.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/amosWeiskopf/linksmith/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open resolves cfg.OutputPath ("stderr", "stdout" or a file path appended
// to) and returns a logger writing there. The closer releases the file.
func Open(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	switch strings.ToLower(cfg.OutputPath) {
	case "", "stderr":
		logger, err := New(cfg, os.Stderr)
		return logger, nopCloser{}, err
	case "stdout":
		logger, err := New(cfg, os.Stdout)
		return logger, nopCloser{}, err
	}

	f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file %s: %w", cfg.OutputPath, err)
	}
	logger, err := New(cfg, f)
	if err != nil {
		_ = f.Close()
		return zerolog.Nop(), nopCloser{}, err
	}
	return logger, f, nil
}

// New returns a logger writing to w at cfg.Level. The "text" format is a
// human-readable console layout; "json" emits one object per line.
func New(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
