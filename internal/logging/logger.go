// Package logging wraps charmbracelet/log with grim's defaults: a quiet
// process-wide logger for the CLI, a timestamped logger for watch sessions,
// and a discarding logger for engine code that was handed none.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide logger shared by the CLI.
var (
	defaultMu     sync.RWMutex
	defaultLogger *log.Logger
)

//nolint:gochecknoglobals // Read-only lookup table.
var levelNames = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

// ParseLevel maps a configured level name to a log level. Names are
// case-insensitive; ok is false for anything else.
func ParseLevel(name string) (log.Level, bool) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	return level, ok
}

// New creates a stderr logger at the named level. Unknown names fall back to info.
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter creates a logger writing to w at the named level.
func NewWriter(w io.Writer, level string) *log.Logger {
	parsed, ok := ParseLevel(level)
	if !ok {
		parsed = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{Level: parsed})
}

// NewInteractive creates an info-level logger for terminal sessions such
// as watch, with timestamps so successive rebuilds can be told apart.
func NewInteractive() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.InfoLevel,
	})
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Default returns the process-wide logger, creating an info-level one on first use.
func Default() *log.Logger {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()
	if logger != nil {
		return logger
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// SetLevel changes the level of the process-wide logger. Unknown names are ignored.
func SetLevel(level string) {
	if parsed, ok := ParseLevel(level); ok {
		Default().SetLevel(parsed)
	}
}
