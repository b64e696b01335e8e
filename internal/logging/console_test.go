package logging

import (
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{in: "debug", want: log.DebugLevel},
		{in: "info", want: log.InfoLevel},
		{in: "warn", want: log.WarnLevel},
		{in: "warning", want: log.WarnLevel},
		{in: "error", want: log.ErrorLevel},
		{in: "fatal", want: log.FatalLevel},
		{in: "bogus", want: log.InfoLevel},
		{in: "", want: log.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		in   string
		want log.Formatter
	}{
		{in: "json", want: log.JSONFormatter},
		{in: "logfmt", want: log.LogfmtFormatter},
		{in: "text", want: log.TextFormatter},
		{in: "", want: log.TextFormatter},
	}

	for _, tt := range tests {
		if got := ParseFormatter(tt.in); got != tt.want {
			t.Errorf("ParseFormatter(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTestConsoleWrites(t *testing.T) {
	var buf strings.Builder
	logger := NewTestConsole(&buf)

	logger.Info("parsed file", "items", 3)

	out := buf.String()
	if !strings.Contains(out, "parsed file") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "items") {
		t.Errorf("output missing field: %q", out)
	}
}
