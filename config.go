package l10n

import "github.com/goliatone/go-cms-l10n/internal/runtimeconfig"

var (
	ErrDefaultLanguageRequired  = runtimeconfig.ErrDefaultLanguageRequired
	ErrLanguagesRequired        = runtimeconfig.ErrLanguagesRequired
	ErrDefaultLanguageNotListed = runtimeconfig.ErrDefaultLanguageNotListed
	ErrURLFlagsExclusive        = runtimeconfig.ErrURLFlagsExclusive
	ErrHostAddsLanguageToURL    = runtimeconfig.ErrHostAddsLanguageToURL
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrCommandTimeoutInvalid    = runtimeconfig.ErrCommandTimeoutInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	Features       = runtimeconfig.Features
	Duration       = runtimeconfig.Duration
	Snapshot       = runtimeconfig.Snapshot
)

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig decodes a TOML file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
