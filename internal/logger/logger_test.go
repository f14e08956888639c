package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":  log.DebugLevel,
		" WARN ": log.WarnLevel,
		"error":  log.ErrorLevel,
		"bogus":  log.InfoLevel,
		"":       log.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "rlcalc", log.InfoLevel, ParseFormatter("json"))
	l.Debug("hidden")
	l.Info("solved", "name", "f")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug message leaked at info level: %s", out)
	}
	if !strings.Contains(out, `"msg":"solved"`) || !strings.Contains(out, `"name":"f"`) {
		t.Fatalf("unexpected JSON output: %s", out)
	}
}
