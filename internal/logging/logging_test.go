package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", "text", &buf)

	logger.Info("connected", "host", "192.168.1.50")

	output := buf.String()
	if !strings.Contains(output, "connected") {
		t.Errorf("expected output to contain 'connected', got: %s", output)
	}
	if !strings.Contains(output, "host=192.168.1.50") {
		t.Errorf("expected output to contain 'host=192.168.1.50', got: %s", output)
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", "json", &buf)

	logger.Info("connected", "host", "192.168.1.50")

	output := buf.String()
	if !strings.Contains(output, `"msg":"connected"`) {
		t.Errorf("expected JSON output with msg field, got: %s", output)
	}
	if !strings.Contains(output, `"host":"192.168.1.50"`) {
		t.Errorf("expected JSON output with host field, got: %s", output)
	}
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		configLevel  string
		logLevel     slog.Level
		shouldAppear bool
	}{
		{"debug at debug level", "debug", slog.LevelDebug, true},
		{"debug at info level", "info", slog.LevelDebug, false},
		{"info at info level", "info", slog.LevelInfo, true},
		{"warn at info level", "info", slog.LevelWarn, true},
		{"info at warn level", "warn", slog.LevelInfo, false},
		{"error at warn level", "warn", slog.LevelError, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(tc.configLevel, "text", &buf)
			logger.Log(context.Background(), tc.logLevel, "message")

			appeared := buf.Len() > 0
			if appeared != tc.shouldAppear {
				t.Errorf("level=%s config=%s: appeared=%v, want %v", tc.logLevel, tc.configLevel, appeared, tc.shouldAppear)
			}
		})
	}
}

func TestNopLoggerDiscardsOutput(t *testing.T) {
	logger := NopLogger()
	logger.Error("should be discarded")
}
