package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/internal/logging/console"
)

func TestConsoleLoggerWritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	level := console.LevelDebug

	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &level,
	})

	logger := provider.GetLogger("l10n.pages")
	logger = logging.WithFields(logger, map[string]any{"module": "l10n.pages"})
	ctx := logging.WithRequestID(context.Background(), "req-7")
	logger = logger.WithContext(ctx)

	pageID := uuid.MustParse("0f5e7c7a-7d3c-4d58-9f39-4dbd0f3d7f10")
	logger.Info("pages.localizations.created", "page_id", pageID, "languages", []string{"en", "de"}, "count", 2)

	got := strings.TrimSpace(buf.String())
	want := "2025-02-03T10:00:00Z INFO pages.localizations.created count=2 languages=en,de logger=l10n.pages module=l10n.pages page_id=0f5e7c7a-7d3c-4d58-9f39-4dbd0f3d7f10 request_id=req-7"
	if got != want {
		t.Fatalf("unexpected entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	level := console.LevelWarn
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: &level})

	logger := provider.GetLogger("l10n")
	logger.Info("skipped")
	logger.Error("kept", "error", errors.New("save failed"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `error="save failed"`) {
		t.Fatalf("expected quoted error value, got %s", lines[0])
	}
}

func TestConsoleLoggerKeepsUnpairedArgs(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("l10n").Debug("odd", "key", "value", "dangling")

	if !strings.Contains(buf.String(), "arg_1=dangling") {
		t.Fatalf("expected positional field, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"WARNING": console.LevelWarn,
		"":        console.LevelInfo,
	}
	for name, want := range cases {
		got, ok := console.ParseLevel(name)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level to report false")
	}
}
