//go:build !integration

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"flower-shop-bot/internal/config"
)

func TestWithAddsContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(&buf, config.LogConfig{Level: "debug", Format: "json"}, false)

	ctx := WithCommand(WithTgID(WithTraceID(context.Background(), "trace-1"), 77), "catalog")
	With(ctx, base).Info().Msg("hello")

	out := buf.String()
	for _, want := range []string{`"trace_id":"trace-1"`, `"tg_id":77`, `"command":"catalog"`, `"message":"hello"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogConfig{Level: "warn"}, false)
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Fatalf("level filter not applied: %s", buf.String())
	}
}

func TestRedact(t *testing.T) {
	if got := Redact("123456:ABCDEFGH", false); got != "1234...GH" {
		t.Errorf("got %q", got)
	}
	if got := Redact("short", false); got != "***" {
		t.Errorf("got %q", got)
	}
	if got := Redact("123456:ABCDEFGH", true); got != "123456:ABCDEFGH" {
		t.Errorf("dev mode should not redact, got %q", got)
	}
}
