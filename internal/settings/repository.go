package settings

import (
	"context"
	"errors"
	"slices"
)

// ErrSettingsNotFound indicates that no settings row has been saved yet.
var ErrSettingsNotFound = errors.New("settings: settings not found")

// Settings is the persisted language configuration.
type Settings struct {
	Languages            []string `json:"languages"`
	DefaultLanguage      string   `json:"default_language"`
	AliasSuffix          bool     `json:"alias_suffix"`
	AddLanguageToURL     bool     `json:"add_language_to_url"`
	HostAddLanguageToURL bool     `json:"host_add_language_to_url"`
	FolderURL            bool     `json:"folder_url"`
}

// Equal compares two settings values.
func (s Settings) Equal(other Settings) bool {
	return slices.Equal(s.Languages, other.Languages) &&
		s.DefaultLanguage == other.DefaultLanguage &&
		s.AliasSuffix == other.AliasSuffix &&
		s.AddLanguageToURL == other.AddLanguageToURL &&
		s.HostAddLanguageToURL == other.HostAddLanguageToURL &&
		s.FolderURL == other.FolderURL
}

func (s Settings) clone() Settings {
	s.Languages = slices.Clone(s.Languages)
	return s
}

// Repository persists settings and emits change notifications.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, settings Settings) (Settings, error)
	Delete(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates settings change events.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports a settings mutation.
type ChangeEvent struct {
	Type     ChangeType
	Settings Settings
}

func newChangeEvent(changeType ChangeType, settings Settings) ChangeEvent {
	return ChangeEvent{Type: changeType, Settings: settings.clone()}
}
