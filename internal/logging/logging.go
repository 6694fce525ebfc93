// Package logging sets up the rotating slog logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/diogo/webchat/internal/config"
)

// ParseLevel maps a config level name to a slog level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// NewRotatingWriter returns a lumberjack writer configured from cfg.
// The log directory is created if needed.
func NewRotatingWriter(cfg config.Config) (*lumberjack.Logger, error) {
	logPath, err := config.GetLogPath(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", filepath.Dir(logPath), err)
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.Logging.MaxSize, // megabytes
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge, // days
		Compress:   cfg.Logging.Compress,
	}, nil
}

// New builds a text logger writing to w
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup creates the file logger and installs it as the slog default.
// The returned closer flushes the log file. When the file cannot be
// opened, logging is discarded and the error is returned.
func Setup(cfg config.Config, verbose bool) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}

	w, err := NewRotatingWriter(cfg)
	if err != nil {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		return logger, nopCloser{}, err
	}

	logger := New(w, level)
	slog.SetDefault(logger)
	return logger, w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
