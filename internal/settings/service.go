package settings

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/languages"
	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/internal/pages"
	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
)

const (
	FieldLanguages        = "languages"
	FieldDefaultLanguage  = "default_language"
	FieldAliasSuffix      = "alias_suffix"
	FieldAddLanguageToURL = "add_language_to_url"
)

// Input is the editable part of the settings form. The host's own
// add-language flag is not editable and comes from the runtime config.
type Input struct {
	Languages        []string `json:"languages"`
	DefaultLanguage  string   `json:"default_language"`
	AliasSuffix      bool     `json:"alias_suffix"`
	AddLanguageToURL bool     `json:"add_language_to_url"`
	FolderURL        bool     `json:"folder_url"`
}

// RootLister lists root pages ordered by sorting.
type RootLister interface {
	ListRoots(ctx context.Context) ([]*pages.Page, error)
}

// Service validates and persists settings and hands out snapshots.
type Service struct {
	repo    Repository
	catalog languages.Repository
	roots   RootLister
	config  runtimeconfig.Config
	state   *State
	logger  interfaces.Logger
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRootLister supplies the root pages used to derive the default language
// when a save does not name one.
func WithRootLister(roots RootLister) ServiceOption {
	return func(s *Service) {
		s.roots = roots
	}
}

func NewService(repo Repository, catalog languages.Repository, cfg runtimeconfig.Config, opts ...ServiceOption) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		config:  cfg,
		state:   NewState(cfg.Snapshot()),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Get returns the stored settings, or the runtime config defaults when none
// were saved.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	stored, err := s.repo.Get(ctx)
	if errors.Is(err, ErrSettingsNotFound) {
		return s.fromConfig(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	stored.HostAddLanguageToURL = s.config.HostAddLanguageToURL
	return stored, nil
}

// Save validates input and persists it. Validation failures are returned as
// *domain.Error wrapping ozzo validation.Errors keyed by field.
func (s *Service) Save(ctx context.Context, input Input) (Settings, error) {
	const op = "settings.save"
	codes := domain.UniqueLanguages(input.Languages)

	known, unknown, err := languages.Filter(ctx, s.catalog, codes)
	if err != nil {
		return Settings{}, err
	}

	if len(codes) == 0 {
		return Settings{}, s.reject(op, domain.KindValidation, FieldLanguages,
			validation.NewError("l10n_languages_required", "at least one language must be enabled"))
	}
	if len(unknown) > 0 {
		return Settings{}, s.reject(op, domain.KindValidation, FieldLanguages,
			validation.NewError("l10n_unknown_language", "unknown language codes: "+strings.Join(unknown, ", ")))
	}

	defaultLanguage, err := s.resolveDefaultLanguage(ctx, input.DefaultLanguage)
	if err != nil {
		return Settings{}, err
	}
	if !slices.Contains(known, defaultLanguage) {
		return Settings{}, s.reject(op, domain.KindValidation, FieldLanguages,
			validation.NewError("l10n_default_language_missing", fmt.Sprintf("the default language %q must be enabled", defaultLanguage)))
	}

	if field, msg := s.urlFlagConflict(input); field != "" {
		return Settings{}, s.reject(op, domain.KindMutualExclusion, field,
			validation.NewError("l10n_url_flags_exclusive", msg))
	}

	next := Settings{
		Languages:            known,
		DefaultLanguage:      defaultLanguage,
		AliasSuffix:          input.AliasSuffix,
		AddLanguageToURL:     input.AddLanguageToURL,
		HostAddLanguageToURL: s.config.HostAddLanguageToURL,
		FolderURL:            input.FolderURL,
	}
	stored, err := s.repo.Upsert(ctx, next)
	if err != nil {
		s.logger.Error("settings.save.failed", "error", err)
		return Settings{}, domain.NewError(domain.KindRuntimeSave, op, "could not store settings", err)
	}
	s.state.Store(toSnapshot(stored))
	s.logger.Info("settings.saved", "languages", stored.Languages, "default_language", stored.DefaultLanguage)
	return stored, nil
}

// Snapshot reloads the settings and returns the frozen view used by one
// operation.
func (s *Service) Snapshot(ctx context.Context) (runtimeconfig.Snapshot, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return runtimeconfig.Snapshot{}, err
	}
	snap := toSnapshot(current)
	s.state.Store(snap)
	return snap, nil
}

// Current returns the last loaded snapshot without touching storage.
func (s *Service) Current() runtimeconfig.Snapshot {
	return s.state.Load()
}

// Watch refreshes the cached snapshot on every repository change event
// until ctx is cancelled.
func (s *Service) Watch(ctx context.Context) error {
	events, err := s.repo.Subscribe(ctx)
	if err != nil {
		return err
	}
	go func() {
		for evt := range events {
			if evt.Type == ChangeDeleted {
				s.state.Store(s.config.Snapshot())
				continue
			}
			s.state.Store(toSnapshot(evt.Settings))
			s.logger.Debug("settings.snapshot.refreshed", "change", string(evt.Type))
		}
	}()
	return nil
}

// LanguageOptions lists the catalog as select options sorted by label.
func (s *Service) LanguageOptions(ctx context.Context) ([]languages.Option, error) {
	return languages.Options(ctx, s.catalog)
}

func (s *Service) resolveDefaultLanguage(ctx context.Context, requested string) (string, error) {
	if code := domain.NormalizeLanguage(requested); code != "" {
		return code, nil
	}
	if s.roots != nil {
		roots, err := s.roots.ListRoots(ctx)
		if err != nil {
			return "", err
		}
		for _, root := range roots {
			if code := domain.NormalizeLanguage(root.Language); code != "" {
				return code, nil
			}
		}
	}
	return domain.NormalizeLanguage(s.config.DefaultLanguage), nil
}

func (s *Service) urlFlagConflict(input Input) (string, string) {
	if s.config.HostAddLanguageToURL {
		switch {
		case input.AliasSuffix:
			return FieldAliasSuffix, "the host already adds the language to urls"
		case input.AddLanguageToURL:
			return FieldAddLanguageToURL, "the host already adds the language to urls"
		}
	}
	if input.AliasSuffix && input.AddLanguageToURL {
		return FieldAliasSuffix, "alias suffix cannot be combined with add-language-to-url"
	}
	return "", ""
}

func (s *Service) reject(op string, kind domain.ErrorKind, field string, cause validation.Error) error {
	errs := validation.Errors{field: cause}
	s.logger.Warn("settings.save.rejected", "kind", string(kind), "field", field, "error", cause.Error())
	return &domain.Error{Kind: kind, Op: op, Field: field, Err: errs}
}

func (s *Service) fromConfig() Settings {
	snap := s.config.Snapshot()
	return Settings{
		Languages:            snap.Languages(),
		DefaultLanguage:      snap.DefaultLanguage(),
		AliasSuffix:          snap.AliasSuffix(),
		AddLanguageToURL:     snap.AddLanguageToURL(),
		HostAddLanguageToURL: snap.HostAddLanguageToURL(),
		FolderURL:            snap.FolderURL(),
	}
}

func toSnapshot(settings Settings) runtimeconfig.Snapshot {
	return runtimeconfig.NewSnapshot(runtimeconfig.SnapshotInput{
		DefaultLanguage:      settings.DefaultLanguage,
		Languages:            settings.Languages,
		AliasSuffix:          settings.AliasSuffix,
		AddLanguageToURL:     settings.AddLanguageToURL,
		HostAddLanguageToURL: settings.HostAddLanguageToURL,
		FolderURL:            settings.FolderURL,
	})
}
