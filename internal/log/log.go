package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const Name = "recurcal"

type Options struct {
	// File receives log lines. Empty disables logging, since the terminal
	// UI owns stdout and stderr.
	File  string
	Level string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the process logger. The returned closer releases the log file
// and is never nil.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	path := strings.TrimSpace(opts.File)
	if path == "" {
		return hclog.NewNullLogger(), nopCloser{}, nil
	}
	level := hclog.LevelFromString(strings.TrimSpace(opts.Level))
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return hclog.NewNullLogger(), nopCloser{}, fmt.Errorf("log: open %s: %w", path, err)
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  level,
		Output: f,
	})
	return logger, f, nil
}

// NewWriter logs to w at the given level; used by one-shot commands that
// may write diagnostics to stderr.
func NewWriter(w io.Writer, level string) hclog.Logger {
	lvl := hclog.LevelFromString(strings.TrimSpace(level))
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{Name: Name, Level: lvl, Output: w})
}
