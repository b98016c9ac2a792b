// Package log wraps charmbracelet/log with the defaults used by blindtype.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Level is a log level.
type Level = log.Level

// Levels.
const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
)

// Options configures a logger.
type Options struct {
	Level           Level
	Prefix          string
	ReportTimestamp bool
	Output          io.Writer
}

// New creates a logger. A nil Output writes to stderr.
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return log.NewWithOptions(out, log.Options{
		Level:           opts.Level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.ReportTimestamp,
	})
}

var defaultLogger = New(Options{Level: WarnLevel, Prefix: "blindtype"})

// Default returns the process-wide logger.
func Default() *log.Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *log.Logger) {
	defaultLogger = l
}

// ParseLevel parses a level name; the empty string means warn.
func ParseLevel(name string) (Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return WarnLevel, nil
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return WarnLevel, fmt.Errorf("invalid log level %q", name)
	}
	return lvl, nil
}

// OpenFile redirects the default logger into path, creating parent
// directories. The returned closer restores stderr output.
func OpenFile(path string, level Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	prev := defaultLogger
	SetDefault(New(Options{Level: level, Prefix: "blindtype", ReportTimestamp: true, Output: f}))
	return closerFunc(func() error {
		SetDefault(prev)
		return f.Close()
	}), nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

// Debug logs at debug level.
func Debug(msg interface{}, keyvals ...interface{}) {
	defaultLogger.Debug(msg, keyvals...)
}

// Info logs at info level.
func Info(msg interface{}, keyvals ...interface{}) {
	defaultLogger.Info(msg, keyvals...)
}

// Warn logs at warn level.
func Warn(msg interface{}, keyvals ...interface{}) {
	defaultLogger.Warn(msg, keyvals...)
}

// Error logs at error level.
func Error(msg interface{}, keyvals ...interface{}) {
	defaultLogger.Error(msg, keyvals...)
}
