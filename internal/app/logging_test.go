package app

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"Info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func newTestLogger(buf *bytes.Buffer, level LogLevel) *Logger {
	l := NewLogger(LoggerConfig{Level: level, Output: buf, Prefix: "test"})
	l.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return l
}

func TestLogger_Line(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelDebug)

	logger.Info("recording stopped", "events", 3, "length_ms", 120)

	want := "2024-05-01T09:30:00.000 [INFO] test: recording stopped events=3 length_ms=120\n"
	if got := buf.String(); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelDebug)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	for _, tag := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"} {
		if !strings.Contains(output, tag) {
			t.Errorf("expected %s in output", tag)
		}
	}
}

func TestLogger_LogLevel_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelWarn)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") {
		t.Error("expected DEBUG to be filtered out")
	}
	if strings.Contains(output, "[INFO]") {
		t.Error("expected INFO to be filtered out")
	}
	if !strings.Contains(output, "[WARN]") {
		t.Error("expected WARN in output")
	}
	if !strings.Contains(output, "[ERROR]") {
		t.Error("expected ERROR in output")
	}
}

func TestLogger_OddArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelInfo)

	logger.Info("odd", "id", 7, "dangling")

	if got := buf.String(); !strings.Contains(got, "id=7 !BADKEY=dangling") {
		t.Errorf("unexpected output: %s", got)
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelInfo)

	logger2 := logger.WithFields(map[string]any{
		"zeta":  1,
		"alpha": "a",
	}).WithComponent("player")
	logger2.Info("test")

	output := buf.String()
	if !strings.Contains(output, "{alpha=a, component=player, zeta=1}") {
		t.Errorf("expected sorted fields in output, got: %s", output)
	}

	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "{") {
		t.Errorf("parent logger gained fields: %s", buf.String())
	}
}

func TestLogger_SetLevelShared(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LogLevelError)
	child := logger.WithComponent("macro")

	child.Info("should not appear")
	if buf.Len() != 0 {
		t.Error("expected no output at error level")
	}

	logger.SetLevel(LogLevelInfo)
	child.Info("should appear")
	if buf.Len() == 0 {
		t.Error("expected child output after SetLevel on parent")
	}
	if child.Level() != LogLevelInfo {
		t.Errorf("child Level() = %s, want INFO", child.Level())
	}
}

func TestNullLogger(t *testing.T) {
	// NullLogger should not panic
	NullLogger.Debug("test")
	NullLogger.Info("test", "k", "v")
	NullLogger.WithComponent("x").Warn("test")
	NullLogger.Error("test")
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()

	if cfg.Level != LogLevelInfo {
		t.Errorf("expected default level INFO, got %d", cfg.Level)
	}
	if cfg.Output == nil {
		t.Error("expected default output to be set")
	}
	if cfg.Prefix != "macrorec" {
		t.Errorf("expected prefix 'macrorec', got '%s'", cfg.Prefix)
	}
}
