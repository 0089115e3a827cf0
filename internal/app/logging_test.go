package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown warn")
	log.Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low levels should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown warn") || !strings.Contains(out, "shown error") {
		t.Errorf("warn and error should pass: %q", out)
	}
}

func TestLoggerPrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig()
	cfg.Level = LogLevelDebug
	cfg.Output = &buf
	log := NewLogger(cfg)

	log.WithComponent("nav").Info("active section %s", "work")

	out := buf.String()
	if !strings.Contains(out, "scrollstorm") {
		t.Errorf("prefix missing: %q", out)
	}
	if !strings.Contains(out, "component=nav") {
		t.Errorf("field missing: %q", out)
	}
	if !strings.Contains(out, "active section work") {
		t.Errorf("formatted message missing: %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"INFO":    LogLevelInfo,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"bogus":   LogLevelInfo,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerDisable(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})
	log.Disable()
	log.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote output: %q", buf.String())
	}
}
