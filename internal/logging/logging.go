// Package logging configures the process-wide slog logger.
//
// The chat TUI owns the terminal, so logs go to a rotating file instead of
// stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/diogo/geminichat/internal/config"
)

const (
	maxLogSizeMB  = 5
	maxLogBackups = 3
	maxLogAgeDays = 14
)

// Init installs a file-backed slog logger as the default and returns it.
// On failure a discarding logger is installed and the error returned, so
// callers can keep running without logs.
func Init(cfg config.Config) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}
	if cfg.Verbose {
		opts.Level = slog.LevelDebug
	}

	logPath, err := config.GetLogPath(cfg)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(logPath), 0o700)
	}
	if err != nil {
		logger := slog.New(NewHandler(cfg.LogFormat, io.Discard, opts))
		slog.SetDefault(logger)
		return logger, err
	}

	writer := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}

	logger := slog.New(NewHandler(cfg.LogFormat, writer, opts))
	slog.SetDefault(logger)
	return logger, nil
}

// ParseLevel maps a config string to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
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

// NewHandler returns a text handler for "text" and a JSON handler otherwise
func NewHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}

// Discard returns a logger that drops everything and reports every level
// as disabled
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
