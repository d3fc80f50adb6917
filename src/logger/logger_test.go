package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestConsoleLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLoggerTo(&buf, zerolog.InfoLevel)

	log.Debug("hidden %d", 1)
	log.Info("cellar %s", "/opt/tea")
	log.Error("lookup failed: %v", "boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "cellar /opt/tea") {
		t.Errorf("missing info message: %q", out)
	}
	if !strings.Contains(out, "lookup failed: boom") {
		t.Errorf("missing error message: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"trace", zerolog.TraceLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.raw); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestSilentLogger(t *testing.T) {
	var l Logger = NewSilentLogger()
	l.Info("x")
	l.Error("x")
	l.Debug("x")
}
