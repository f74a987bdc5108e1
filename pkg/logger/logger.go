// Package logger provides the small per-subsystem logging wrapper used
// throughout blockwatch, in the style of "pkg:component" named loggers.
// It is silent by default; BLOCKWATCH_DEBUG=1 (or -v/--verbose) enables
// debug output to stderr.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

var debugEnabled atomic.Bool

func init() {
	if os.Getenv("BLOCKWATCH_DEBUG") != "" {
		debugEnabled.Store(true)
	}
}

// SetDebug toggles debug logging process-wide. The CLI calls this when
// -v/--verbose is set.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// Enabled reports whether debug logging is currently on.
func Enabled() bool {
	return debugEnabled.Load()
}

// Logger is a named, leveled logger for one subsystem/file.
type Logger struct {
	name string
	slog *slog.Logger
}

// New creates a Logger named "subsystem:component", matching the
// convention used throughout the codebase (e.g. "bwvalidate:engine").
func New(name string) *Logger {
	return &Logger{
		name: name,
		slog: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

// Printf logs a debug-level message when debug logging is enabled.
func (l *Logger) Printf(format string, args ...any) {
	if !Enabled() {
		return
	}
	l.slog.Debug(fmt.Sprintf(format, args...), "component", l.name)
}

// Print logs a debug-level message when debug logging is enabled.
func (l *Logger) Print(args ...any) {
	if !Enabled() {
		return
	}
	l.slog.Debug(fmt.Sprint(args...), "component", l.name)
}
