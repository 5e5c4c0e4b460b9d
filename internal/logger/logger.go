// Package logger provides a simple structured logging interface for clustertop
// components. Packages log with a message plus key/value pairs without being
// coupled to a specific logging implementation.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DebugEnv enables debug output for the env logger when set to any value.
const DebugEnv = "CLUSTERTOP_DEBUG"

// Logger defines the interface for logging operations.
// Fields are alternating key/value pairs: Warn("grid overflow", "nodes", 12, "capacity", 9).
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// Options configures a zerolog-backed logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Format is "console" (human readable) or "json".
	Format string
	// Component is attached to every entry when non-empty.
	Component string
}

// zeroLogger implements Logger on top of zerolog.
type zeroLogger struct {
	zl zerolog.Logger
}

// New creates a logger writing to w.
// CLUSTERTOP_DEBUG forces the debug level regardless of opts.Level.
func New(w io.Writer, opts Options) Logger {
	if opts.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	level := ParseLevel(opts.Level)
	if os.Getenv(DebugEnv) != "" {
		level = zerolog.DebugLevel
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return &zeroLogger{zl: ctx.Logger()}
}

// NewEnvLogger creates a console logger on stderr that respects CLUSTERTOP_DEBUG.
// The component is attached to all entries (e.g., "source" or "loop").
func NewEnvLogger(component string) Logger {
	return New(os.Stderr, Options{Component: component})
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *zeroLogger) Debug(msg string, fields ...interface{}) {
	emit(l.zl.Debug(), msg, fields)
}

func (l *zeroLogger) Info(msg string, fields ...interface{}) {
	emit(l.zl.Info(), msg, fields)
}

func (l *zeroLogger) Warn(msg string, fields ...interface{}) {
	emit(l.zl.Warn(), msg, fields)
}

func (l *zeroLogger) Error(msg string, fields ...interface{}) {
	emit(l.zl.Error(), msg, fields)
}

func (l *zeroLogger) With(fields ...interface{}) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		ctx = ctx.Interface(keyOf(fields[i]), fields[i+1])
	}
	return &zeroLogger{zl: ctx.Logger()}
}

// emit attaches key/value pairs to e and writes it. A trailing key without a
// value is dropped. Errors are logged by message.
func emit(e *zerolog.Event, msg string, fields []interface{}) {
	if e == nil {
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := keyOf(fields[i])
		if err, ok := fields[i+1].(error); ok {
			e.Str(key, err.Error())
			continue
		}
		e.Interface(key, fields[i+1])
	}
	e.Msg(msg)
}

func keyOf(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// noopLogger implements Logger but discards all messages.
// Useful for testing or when logging is not desired.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(msg string, fields ...interface{}) {}
func (l *noopLogger) Info(msg string, fields ...interface{})  {}
func (l *noopLogger) Warn(msg string, fields ...interface{})  {}
func (l *noopLogger) Error(msg string, fields ...interface{}) {}
func (l *noopLogger) With(fields ...interface{}) Logger       { return l }

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// BufferLogger captures log messages for testing.
// Safe for use from the render loop goroutine while a test inspects it.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) Debug(msg string, fields ...interface{}) { l.record("debug", msg, nil, fields) }
func (l *BufferLogger) Info(msg string, fields ...interface{})  { l.record("info", msg, nil, fields) }
func (l *BufferLogger) Warn(msg string, fields ...interface{})  { l.record("warn", msg, nil, fields) }
func (l *BufferLogger) Error(msg string, fields ...interface{}) { l.record("error", msg, nil, fields) }

// With returns a child that records into the same buffer with extra fields.
func (l *BufferLogger) With(fields ...interface{}) Logger {
	return &bufferChild{root: l, base: fields}
}

func (l *BufferLogger) record(level, msg string, base, fields []interface{}) {
	m := make(map[string]interface{}, (len(base)+len(fields))/2)
	for _, kv := range [][]interface{}{base, fields} {
		for i := 0; i+1 < len(kv); i += 2 {
			m[keyOf(kv[i])] = kv[i+1]
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: msg, Fields: m})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Find returns the first message with the given text.
func (l *BufferLogger) Find(msg string) (LogMessage, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Message == msg {
			return m, true
		}
	}
	return LogMessage{}, false
}

// Snapshot returns a copy of the captured messages.
func (l *BufferLogger) Snapshot() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(l.Messages))
	copy(out, l.Messages)
	return out
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

type bufferChild struct {
	root *BufferLogger
	base []interface{}
}

func (c *bufferChild) Debug(msg string, fields ...interface{}) { c.root.record("debug", msg, c.base, fields) }
func (c *bufferChild) Info(msg string, fields ...interface{})  { c.root.record("info", msg, c.base, fields) }
func (c *bufferChild) Warn(msg string, fields ...interface{})  { c.root.record("warn", msg, c.base, fields) }
func (c *bufferChild) Error(msg string, fields ...interface{}) { c.root.record("error", msg, c.base, fields) }

func (c *bufferChild) With(fields ...interface{}) Logger {
	merged := make([]interface{}, 0, len(c.base)+len(fields))
	merged = append(merged, c.base...)
	merged = append(merged, fields...)
	return &bufferChild{root: c.root, base: merged}
}

// defaultLogger is the package-level default logger.
var defaultLogger = NewEnvLogger("")

// Default returns the default logger for the package.
func Default() Logger {
	return defaultLogger
}

// SetDefault sets the default logger for the package.
func SetDefault(l Logger) {
	defaultLogger = l
}
