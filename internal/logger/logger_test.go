package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for input, expected := range tests {
		if got := parseLogLevel(input); got != expected {
			t.Errorf("parseLogLevel(%q) = %s, want %s", input, got, expected)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	log := New(&buf, "info", "json")
	log.Debug().Msg("hidden")
	log.Info().Str("path", "/login").Msg("Navigation allowed")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "Navigation allowed" || line["path"] != "/login" || line["service"] != "parkd" {
		t.Errorf("unexpected log line %v", line)
	}
}
