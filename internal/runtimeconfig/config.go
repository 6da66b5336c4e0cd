package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-cms-l10n/internal/domain"
)

var (
	ErrDefaultLanguageRequired  = errors.New("l10n config: default language is required")
	ErrLanguagesRequired        = errors.New("l10n config: at least one language is required")
	ErrDefaultLanguageNotListed = errors.New("l10n config: default language must be one of the configured languages")
	ErrURLFlagsExclusive        = errors.New("l10n config: alias suffix and add-language-to-url are mutually exclusive")
	ErrHostAddsLanguageToURL    = errors.New("l10n config: host already adds the language to urls")
	ErrStorageProviderUnknown   = errors.New("l10n config: storage provider is invalid")
	ErrStorageDSNRequired       = errors.New("l10n config: storage dsn is required for sql providers")
	ErrCacheTTLInvalid          = errors.New("l10n config: cache ttl must be positive when cache is enabled")
	ErrLoggingProviderRequired  = errors.New("l10n config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("l10n config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("l10n config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("l10n config: logging format is invalid")
	ErrCommandTimeoutInvalid    = errors.New("l10n config: command timeout must not be negative")
)

// Config aggregates the language configuration, storage bindings and
// ambient toggles for the l10n module.
type Config struct {
	Enabled              bool           `toml:"enabled"`
	DefaultLanguage      string         `toml:"default_language"`
	Languages            []string       `toml:"languages"`
	AliasSuffix          bool           `toml:"alias_suffix"`
	AddLanguageToURL     bool           `toml:"add_language_to_url"`
	HostAddLanguageToURL bool           `toml:"host_add_language_to_url"`
	FolderURL            bool           `toml:"folder_url"`
	Storage              StorageConfig  `toml:"storage"`
	Cache                CacheConfig    `toml:"cache"`
	HTTP                 HTTPConfig     `toml:"http"`
	Logging              LoggingConfig  `toml:"logging"`
	Commands             CommandsConfig `toml:"commands"`
	Features             Features       `toml:"features"`
}

// StorageConfig selects the repository backend. Provider is one of
// "memory", "sqlite" or "postgres".
type StorageConfig struct {
	Provider string `toml:"provider"`
	DSN      string `toml:"dsn"`
}

// CacheConfig controls the language catalog cache.
type CacheConfig struct {
	Enabled    bool     `toml:"enabled"`
	DefaultTTL Duration `toml:"default_ttl"`
}

// HTTPConfig configures the admin adapter.
type HTTPConfig struct {
	BasePath string `toml:"base_path"`
	Addr     string `toml:"addr"`
}

// LoggingConfig captures provider options for runtime logging.
type LoggingConfig struct {
	Provider  string   `toml:"provider"`
	Level     string   `toml:"level"`
	Format    string   `toml:"format"`
	AddSource bool     `toml:"add_source"`
	Focus     []string `toml:"focus"`
}

// CommandsConfig tunes the command handlers.
type CommandsConfig struct {
	Timeout Duration `toml:"timeout"`
}

// Features toggles optional behaviour.
type Features struct {
	Logger   bool `toml:"logger"`
	Commands bool `toml:"commands"`
}

// DefaultConfig returns the defaults used when no config file is supplied.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		DefaultLanguage: "en",
		Languages:       []string{"en", "de", "bg"},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: Duration(time.Minute),
		},
		HTTP: HTTPConfig{
			BasePath: "/admin/l10n",
			Addr:     ":8080",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Commands: CommandsConfig{
			Timeout: Duration(30 * time.Second),
		},
		Features: Features{
			Commands: true,
		},
	}
}

// Validate performs consistency checks. Catalog membership of the language
// codes is checked by the settings service, not here.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLanguage) == "" {
		return ErrDefaultLanguageRequired
	}
	languages := domain.UniqueLanguages(cfg.Languages)
	if len(languages) == 0 {
		return ErrLanguagesRequired
	}
	if !slices.Contains(languages, domain.NormalizeLanguage(cfg.DefaultLanguage)) {
		return fmt.Errorf("%w: %s", ErrDefaultLanguageNotListed, cfg.DefaultLanguage)
	}
	if cfg.AliasSuffix && cfg.AddLanguageToURL {
		return ErrURLFlagsExclusive
	}
	if cfg.HostAddLanguageToURL && (cfg.AliasSuffix || cfg.AddLanguageToURL) {
		return ErrHostAddsLanguageToURL
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "console" && provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := normalize(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := normalize(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
