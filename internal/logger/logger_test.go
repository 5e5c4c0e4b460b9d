package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestNew_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		level     string
		expectLog bool
	}{
		{name: "logs when CLUSTERTOP_DEBUG is set", envValue: "1", expectLog: true},
		{name: "logs when level is debug", level: "debug", expectLog: true},
		{name: "does not log at default level", expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(DebugEnv, tt.envValue)
			} else {
				os.Unsetenv(DebugEnv)
			}

			var buf bytes.Buffer
			l := New(&buf, Options{Format: "json", Level: tt.level})
			l.Debug("debug message", "tick", 3)

			if tt.expectLog {
				assert.Contains(t, buf.String(), "debug message")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestNew_StructuredFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Format: "json", Component: "grid"})

	l.Warn("node count exceeds grid capacity", "nodes", 14, "capacity", 9)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "grid", entries[0]["component"])
	assert.Equal(t, "node count exceeds grid capacity", entries[0]["message"])
	assert.EqualValues(t, 14, entries[0]["nodes"])
	assert.EqualValues(t, 9, entries[0]["capacity"])
}

func TestNew_ErrorValuesLoggedByMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Format: "json"})

	l.Error("tick failed", "error", errors.New("connection refused"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "connection refused", entries[0]["error"])
}

func TestNew_WithCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Format: "json"}).With("run", "abc")

	l.Info("started")
	l.Info("stopped", "ticks", 2)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "abc", e["run"])
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{})

	l.Info("hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "k=v")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNoopLogger(t *testing.T) {
	l := Noop()
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
	assert.NotNil(t, l.With("k", "v"))
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug msg")
	l.Info("info msg", "n", 1)
	l.Warn("warn msg")
	l.Error("error msg", "error", "x")

	require.Len(t, l.Messages, 4)

	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "debug msg", l.Messages[0].Message)

	assert.Equal(t, "info", l.Messages[1].Level)
	assert.Equal(t, 1, l.Messages[1].Fields["n"])

	assert.Equal(t, "warn", l.Messages[2].Level)
	assert.Equal(t, "error", l.Messages[3].Level)
	assert.Equal(t, "x", l.Messages[3].Fields["error"])
}

func TestBufferLogger_With(t *testing.T) {
	l := NewBufferLogger()

	child := l.With("run", "r1").With("component", "loop")
	child.Info("tick", "n", 7)

	msg, ok := l.Find("tick")
	require.True(t, ok)
	assert.Equal(t, "r1", msg.Fields["run"])
	assert.Equal(t, "loop", msg.Fields["component"])
	assert.Equal(t, 7, msg.Fields["n"])
}

func TestBufferLogger_HasLevel(t *testing.T) {
	l := NewBufferLogger()

	assert.False(t, l.HasLevel("debug"))
	assert.False(t, l.HasLevel("error"))

	l.Debug("test")
	assert.True(t, l.HasLevel("debug"))
	assert.False(t, l.HasLevel("error"))

	l.Error("test")
	assert.True(t, l.HasLevel("error"))
}

func TestBufferLogger_ClearAndSnapshot(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("test1")
	l.Info("test2")
	snap := l.Snapshot()
	require.Len(t, snap, 2)

	l.Clear()
	assert.Empty(t, l.Messages)
	assert.Len(t, snap, 2, "snapshot is independent of the buffer")
}

func TestDefault(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	assert.NotNil(t, Default())

	buf := NewBufferLogger()
	SetDefault(buf)

	assert.Equal(t, buf, Default())
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = New(&bytes.Buffer{}, Options{})
	var _ Logger = Noop()
	var _ Logger = NewBufferLogger()
}
