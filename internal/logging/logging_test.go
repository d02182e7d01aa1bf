package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	New("store").Debug("locale loaded", slog.String("locale", "en"))

	output := buf.String()
	if !strings.Contains(output, "component=store") {
		t.Fatalf("expected component=store in output, got: %s", output)
	}
	if !strings.Contains(output, "locale=en") {
		t.Fatalf("expected locale=en in output, got: %s", output)
	}
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "JSON", &buf)

	New("cli").Info("generated")

	output := buf.String()
	if !strings.Contains(output, `"level":"INFO"`) {
		t.Fatalf("expected JSON level field, got: %s", output)
	}
	if !strings.Contains(output, `"component":"cli"`) {
		t.Fatalf("expected JSON component field, got: %s", output)
	}
}

func TestInitLevelGating(t *testing.T) {
	var buf bytes.Buffer
	logger := Init(slog.LevelWarn, "text", &buf)

	logger.Info("suppressed")
	logger.Warn("kept")

	output := buf.String()
	if strings.Contains(output, "suppressed") {
		t.Fatalf("info message should be gated at warn level: %s", output)
	}
	if !strings.Contains(output, "kept") {
		t.Fatalf("warn message missing: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error = %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("ParseLevel(verbose) expected error")
	}
}
