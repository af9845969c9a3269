package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
)

// Not parallel: replaces the global logger.
func TestInitWritesJSONAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	t.Cleanup(func() { Init() })

	log.Debug().Msg("hidden")
	log.Info().Str("session_id", "s1").Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["message"] != "visible" || entry["session_id"] != "s1" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if _, ok := entry["caller"]; !ok {
		t.Fatalf("expected caller field: %#v", entry)
	}
}

func TestInitDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Debug: true, Output: &buf})
	t.Cleanup(func() { Init() })

	log.Debug().Msg("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("expected debug entry, got %q", buf.String())
	}
}
