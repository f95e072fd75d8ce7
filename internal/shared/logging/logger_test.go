package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: " WARNING ", expected: slog.LevelWarn},
		{input: "err", expected: slog.LevelError},
		{input: "trace", expected: LevelTrace},
		{input: "", expected: slog.LevelInfo},
		{input: "verbose", expected: slog.LevelInfo},
	}

	for _, tc := range cases {
		if got := ParseLevel(tc.input); got != tc.expected {
			t.Fatalf("ParseLevel(%q) expected %v got %v", tc.input, tc.expected, got)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "info", Format: "JSON"})
	logger.Info("reservation relayed", slog.String("channel", "email"))

	out := buf.String()
	if !strings.HasPrefix(out, "{") {
		t.Fatalf("expected json output, got %q", out)
	}
	if !strings.Contains(out, `"channel":"email"`) {
		t.Fatalf("expected channel attribute, got %q", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "warn"})
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}

func TestSetupCreatesDailyFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)

	file, logger, err := Setup(Config{Directory: dir, Level: "debug"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer file.Close()
	logger.Debug("hello")

	if _, err := os.Stat(filepath.Join(dir, "2026-03-14.log")); err != nil {
		t.Fatalf("expected daily log file: %v", err)
	}
}
