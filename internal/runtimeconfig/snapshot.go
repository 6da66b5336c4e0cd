package runtimeconfig

import (
	"slices"

	"github.com/goliatone/go-cms-l10n/internal/domain"
)

// Snapshot is the read-only language configuration handed to each operation.
// It is built once per request so a concurrent settings save never changes
// the language set halfway through an operation.
type Snapshot struct {
	defaultLanguage      string
	languages            []string
	aliasSuffix          bool
	addLanguageToURL     bool
	hostAddLanguageToURL bool
	folderURL            bool
}

// SnapshotInput carries the values a Snapshot is built from.
type SnapshotInput struct {
	DefaultLanguage      string
	Languages            []string
	AliasSuffix          bool
	AddLanguageToURL     bool
	HostAddLanguageToURL bool
	FolderURL            bool
}

// NewSnapshot normalizes input. The default language is placed first when it
// is missing from the list.
func NewSnapshot(input SnapshotInput) Snapshot {
	def := domain.NormalizeLanguage(input.DefaultLanguage)
	languages := domain.UniqueLanguages(input.Languages)
	if def != "" && !slices.Contains(languages, def) {
		languages = append([]string{def}, languages...)
	}
	return Snapshot{
		defaultLanguage:      def,
		languages:            languages,
		aliasSuffix:          input.AliasSuffix,
		addLanguageToURL:     input.AddLanguageToURL,
		hostAddLanguageToURL: input.HostAddLanguageToURL,
		folderURL:            input.FolderURL,
	}
}

// Snapshot freezes the language portion of cfg.
func (cfg Config) Snapshot() Snapshot {
	return NewSnapshot(SnapshotInput{
		DefaultLanguage:      cfg.DefaultLanguage,
		Languages:            cfg.Languages,
		AliasSuffix:          cfg.AliasSuffix,
		AddLanguageToURL:     cfg.AddLanguageToURL,
		HostAddLanguageToURL: cfg.HostAddLanguageToURL,
		FolderURL:            cfg.FolderURL,
	})
}

func (s Snapshot) DefaultLanguage() string { return s.defaultLanguage }

// Languages returns a copy of the enabled language codes in configured order.
func (s Snapshot) Languages() []string { return slices.Clone(s.languages) }

func (s Snapshot) HasLanguage(code string) bool {
	return slices.Contains(s.languages, domain.NormalizeLanguage(code))
}

func (s Snapshot) AliasSuffix() bool          { return s.aliasSuffix }
func (s Snapshot) AddLanguageToURL() bool     { return s.addLanguageToURL }
func (s Snapshot) HostAddLanguageToURL() bool { return s.hostAddLanguageToURL }
func (s Snapshot) FolderURL() bool            { return s.folderURL }

// WithFolderURL returns a copy with folder-URL mode set.
func (s Snapshot) WithFolderURL(enabled bool) Snapshot {
	s.languages = slices.Clone(s.languages)
	s.folderURL = enabled
	return s
}
