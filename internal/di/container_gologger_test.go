package di

import (
	"strings"
	"testing"

	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/internal/logging/gologger"
	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
)

func goLoggerConfig(format string) runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = format
	cfg.Logging.Focus = []string{"l10n.pages"}
	return cfg
}

func TestModuleLoggersComeFromGoLogger(t *testing.T) {
	container, err := NewContainer(goLoggerConfig("json"))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	provider := container.LoggerProvider()
	if _, ok := provider.(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", provider)
	}

	modules := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		"pages":        logging.PagesLogger,
		"translations": logging.TranslationsLogger,
		"settings":     logging.SettingsLogger,
		"commands":     logging.CommandsLogger,
	}
	for name, build := range modules {
		logger := build(provider)
		if logger == nil || logger == logging.NoOp() {
			t.Fatalf("%s: expected a go-logger module logger, got %T", name, logger)
		}
		if _, ok := logger.(interfaces.FieldsLogger); !ok {
			t.Fatalf("%s: expected module logger to accept fields, got %T", name, logger)
		}
		logging.WithPageContext(logger, "page-1", "de-CH").Debug("l10n.test.module_logger")
	}
}

func TestGoLoggerUnknownFormatFailsContainer(t *testing.T) {
	_, err := NewContainer(goLoggerConfig("xml"))
	if err == nil {
		t.Fatal("expected error for unsupported go-logger format")
	}
	if !strings.Contains(err.Error(), "configure logger") {
		t.Fatalf("expected configure logger error, got %v", err)
	}
}

func TestConsoleProviderIsTheDefault(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if _, ok := container.LoggerProvider().(*gologger.Provider); ok {
		t.Fatal("expected console provider when no provider is configured")
	}
	if logging.RootLogger(container.LoggerProvider()) == logging.NoOp() {
		t.Fatal("expected console root logger")
	}
}
