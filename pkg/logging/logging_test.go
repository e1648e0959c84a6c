package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewHandler(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(NewHandler(&buf, slog.LevelInfo, "json"))
		logger.Info("Account added", "account_id", "abc")

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
		}
		if record["account_id"] != "abc" {
			t.Errorf("account_id = %v, want abc", record["account_id"])
		}
	})

	t.Run("text respects level", func(t *testing.T) {
		var buf bytes.Buffer
		h := NewHandler(&buf, slog.LevelWarn, "text")
		if h.Enabled(context.Background(), slog.LevelInfo) {
			t.Error("info should be disabled at warn level")
		}
		slog.New(h).Warn("Chain broken", "account_id", "abc")
		if !strings.Contains(buf.String(), "Chain broken") {
			t.Errorf("missing message in %q", buf.String())
		}
	})
}
