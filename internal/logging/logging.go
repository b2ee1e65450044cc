// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes where log records go.
type Config struct {
	Level      string // debug, info, warn or error
	LogFile    string // Log file path, empty for stderr only
	MaxSize    int    // Max size in megabytes
	MaxBackups int    // Max number of backups
	MaxAge     int    // Max age in days
	Compress   bool   // Compress backups
}

// DefaultConfig logs warnings and errors to stderr.
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
}

// New builds a text logger writing to stderr, and to a rotating file when
// config.LogFile is set. The returned closer releases the file.
func New(config Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = stderr
	var closer io.Closer = nopCloser{}
	if config.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.LogFile), 0o755); err != nil {
			return nil, nil, err
		}
		file := &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		}
		out = io.MultiWriter(stderr, file)
		closer = file
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup is New followed by slog.SetDefault.
func Setup(config Config) (io.Closer, error) {
	logger, closer, err := New(config, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closer, nil
}
