// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config selects where and how verbosely to log. With File empty, logs go
// to Writer (stderr when nil).
type Config struct {
	Debug  bool
	JSON   bool
	File   string
	Writer io.Writer
}

var (
	mu      sync.RWMutex
	global  = discard()
	logFile *os.File
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Setup installs the global logger and returns a cleanup func that closes
// the log file, if one was opened, and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	var f *os.File

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}

		var err error

		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, err
		}

		w = f
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}

			return a
		},
	}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if cfg.JSON {
		h = slog.NewJSONHandler(w, opts)
	}

	mu.Lock()
	global = slog.New(h)
	logFile = f
	mu.Unlock()

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}

		logFile = nil
		global = discard()

		return cerr
	}

	return cleanup, nil
}

// L returns the global logger. Before Setup it discards everything.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return global
}
