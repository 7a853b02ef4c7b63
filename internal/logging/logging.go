// Package logging builds the file logger. The terminal belongs to the TUI, so
// nothing is ever written to stdout or stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Open returns a JSON logger appending to path. An empty path, "none" or
// "off" gives a logger that discards everything. The returned closer is
// never nil.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	trimmed := strings.TrimSpace(path)
	switch strings.ToLower(trimmed) {
	case "", "none", "off":
		return Discard(), nopCloser{}, nil
	}
	if dir := filepath.Dir(trimmed); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Discard(), nopCloser{}, err
		}
	}
	f, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return Discard(), nopCloser{}, err
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}

func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func ParseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
