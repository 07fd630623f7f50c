package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := CurrentLevel()
	SetSink(&buf)
	t.Cleanup(func() {
		SetSink(os.Stderr)
		SetLevel(previous)
	})
	return &buf
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := captureLogs(t)
	SetLevel(Notice)

	logger := New("test")
	logger.Infof("hidden %d", 1)
	logger.Noticef("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Errorf("Info message should be filtered at Notice level, got %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("Expected notice message in output, got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("Expected module name in output, got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("debugging %s", "now")
	if !strings.Contains(buf.String(), "debugging now") {
		t.Errorf("Expected debug message after SetLevel(Debug), got %q", buf.String())
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	captureLogs(t)
	SetLevel(Warning)

	var buf bytes.Buffer
	SetSink(&buf)
	if CurrentLevel() != Warning {
		t.Fatalf("expected level to survive SetSink, got %v", CurrentLevel())
	}

	logger := New("sink")
	logger.Notice("quiet")
	logger.Warning("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("expected only the warning, got %q", buf.String())
	}
}

func TestSetLevelClamps(t *testing.T) {
	captureLogs(t)

	SetLevel(Level(-3))
	if CurrentLevel() != Debug {
		t.Errorf("expected Debug, got %v", CurrentLevel())
	}
	SetLevel(Level(42))
	if CurrentLevel() != Error {
		t.Errorf("expected Error, got %v", CurrentLevel())
	}
}

func TestVerbosity(t *testing.T) {
	tests := []struct {
		verbose, veryVerbose bool
		expected             Level
	}{
		{false, false, Notice},
		{true, false, Info},
		{false, true, Debug},
		{true, true, Debug},
	}

	for _, tt := range tests {
		if got := Verbosity(tt.verbose, tt.veryVerbose); got != tt.expected {
			t.Errorf("Verbosity(%v, %v) = %v, want %v", tt.verbose, tt.veryVerbose, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", "Notice", "warning", "error"} {
		level, err := ParseLevel(name)
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", name, err)
			continue
		}
		if !strings.EqualFold(level.String(), name) {
			t.Errorf("ParseLevel(%q) = %v", name, level)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Error("expected an error for an unknown level")
	}
	if got := Level(9).String(); got != "Level(9)" {
		t.Errorf("unexpected name for out of range level: %q", got)
	}
}
