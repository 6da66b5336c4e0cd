package settings

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepository_CRUDEvents(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := repo.Get(ctx); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}

	events, err := repo.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	settings := Settings{Languages: []string{"en", "de"}, DefaultLanguage: "en"}
	if _, err := repo.Upsert(ctx, settings); err != nil {
		t.Fatalf("Upsert() create error = %v", err)
	}
	assertEvent(t, events, ChangeCreated)

	if _, err := repo.Upsert(ctx, settings); err != nil {
		t.Fatalf("Upsert() noop error = %v", err)
	}
	assertNoEvent(t, events)

	settings.FolderURL = true
	if _, err := repo.Upsert(ctx, settings); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}
	assertEvent(t, events, ChangeUpdated)

	settings.Languages[0] = "bg"
	fetched, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fetched.Languages[0] != "en" || !fetched.FolderURL {
		t.Fatalf("expected stored copy to be isolated, got %+v", fetched)
	}

	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	assertEvent(t, events, ChangeDeleted)

	if err := repo.Delete(ctx); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}
}

func assertEvent(t *testing.T, events <-chan ChangeEvent, want ChangeType) {
	t.Helper()
	select {
	case evt := <-events:
		if evt.Type != want {
			t.Fatalf("expected event %s, got %s", want, evt.Type)
		}
	default:
		t.Fatalf("expected event %s, got none", want)
	}
}

func assertNoEvent(t *testing.T, events <-chan ChangeEvent) {
	t.Helper()
	select {
	case evt := <-events:
		t.Fatalf("expected no event, got %s", evt.Type)
	default:
	}
}
