// Package logging builds the application's logrus logger from the [log]
// section of the configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/dshills/thunderpad/internal/config"
)

// stderr and stderrIsTTY are replaced in tests.
var stderr io.Writer = os.Stderr

var stderrIsTTY = func() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Logger is the root logger plus the log file it owns, if any.
type Logger struct {
	*logrus.Logger
	file *os.File
}

// New creates a logger. Output goes to the configured file and, when stderr
// is not an interactive terminal, to stderr; the terminal UI owns the tty
// otherwise. With neither, output is discarded.
func New(cfg config.LogConfig) (*Logger, error) {
	l := &Logger{Logger: logrus.New()}

	level, levelErr := logrus.ParseLevel(cfg.Level)
	if levelErr != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&TextFormatter{})
	}

	var writers []io.Writer
	if cfg.File != "" {
		path := expandPath(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		l.file = f
		writers = append(writers, f)
	}
	if !stderrIsTTY() {
		writers = append(writers, stderr)
	}

	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}

	if cfg.Level != "" && levelErr != nil {
		l.WithField("level", cfg.Level).Warn("unknown log level, using info")
	}
	return l, nil
}

// Component returns an entry tagged with the component name.
func (l *Logger) Component(name string) *logrus.Entry {
	return l.WithField("component", name)
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Discard returns a logger that drops everything, for tests and tools.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
