package adapter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "popcorn.log")
	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "DEBUG", MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	logger.Debug("hello", "key", "value")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) || !strings.Contains(string(data), `"key":"value"`) {
		t.Errorf("expected JSON log line, got %s", data)
	}
}

func TestNewServerLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewServerLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "status", 502)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info to be filtered at warn level, got %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "502") {
		t.Errorf("expected warn line, got %s", out)
	}
}
