package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", FormatJSON)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Str("id", "a").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info event logged at warn level: %s", out)
	}
	for _, want := range []string{`"level":"warn"`, `"id":"a"`, `"message":"shown"`, `"time":`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %s", out, want)
		}
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", "")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info().Str("file", "a.svg").Msg("collected symbols")

	out := buf.String()
	if !strings.Contains(out, "collected symbols") || !strings.Contains(out, "file=a.svg") {
		t.Fatalf("console log = %q", out)
	}
	if strings.Contains(out, "{") {
		t.Fatalf("console log looks like JSON: %q", out)
	}
}

func TestNewErrors(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(&buf, "loud", FormatJSON); err == nil {
		t.Fatalf("New(bad level) error = nil")
	}
	if _, err := New(&buf, "info", "xml"); err == nil {
		t.Fatalf("New(bad format) error = nil")
	}
}
