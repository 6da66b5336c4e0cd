package main

import (
	"testing"

	l10n "github.com/goliatone/go-cms-l10n"
)

func TestApplyEnvOverridesStorageAndAddr(t *testing.T) {
	t.Setenv("L10N_STORAGE_PROVIDER", "sqlite")
	t.Setenv("L10N_STORAGE_DSN", "file:l10nd.db")
	t.Setenv("L10N_HTTP_ADDR", ":9090")

	cfg := l10n.DefaultConfig()
	applyEnv(&cfg)

	if cfg.Storage.Provider != "sqlite" || cfg.Storage.DSN != "file:l10nd.db" {
		t.Fatalf("unexpected storage config %#v", cfg.Storage)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("expected addr override, got %q", cfg.HTTP.Addr)
	}
}

func TestApplyEnvKeepsConfigWhenUnset(t *testing.T) {
	t.Setenv("L10N_STORAGE_PROVIDER", "")
	t.Setenv("L10N_STORAGE_DSN", "")
	t.Setenv("L10N_HTTP_ADDR", "")

	cfg := l10n.DefaultConfig()
	applyEnv(&cfg)

	if cfg.Storage.Provider != "memory" || cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected defaults, got %#v %q", cfg.Storage, cfg.HTTP.Addr)
	}
}
