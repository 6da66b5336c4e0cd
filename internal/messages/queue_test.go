package messages

import (
	"context"
	"testing"
)

func TestQueueDrain(t *testing.T) {
	ctx := context.Background()
	q := NewQueue()
	q.AddError(ctx, "boom")
	q.AddConfirmation(ctx, "saved")
	q.AddInfo(ctx, "")

	if got := len(q.Peek()); got != 2 {
		t.Fatalf("expected 2 messages, got %d", got)
	}
	msgs := q.Drain()
	if msgs[0].Level != LevelError || msgs[0].Text != "boom" {
		t.Fatalf("unexpected first message %+v", msgs[0])
	}
	if len(q.Drain()) != 0 {
		t.Fatalf("expected queue to be empty after drain")
	}
}

func TestLabels(t *testing.T) {
	ctx := context.Background()
	labels := DefaultLabels()
	if got := labels.Label(ctx, "MSC.apply"); got != "Apply" {
		t.Fatalf("expected Apply, got %q", got)
	}
	if got := labels.Label(ctx, "MSC.editL10n", `"Home"`); got != `Edit localizations of "Home"` {
		t.Fatalf("unexpected formatted label %q", got)
	}
	if got := labels.Label(ctx, "MSC.unknown"); got != "MSC.unknown" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}
