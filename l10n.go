package l10n

import (
	"context"
	"html/template"
	"net/http"

	"github.com/goliatone/go-cms-l10n/internal/di"
	"github.com/goliatone/go-cms-l10n/internal/forms"
	"github.com/goliatone/go-cms-l10n/internal/hooks"
	l10nhttp "github.com/goliatone/go-cms-l10n/internal/http"
	"github.com/goliatone/go-cms-l10n/internal/messages"
	"github.com/goliatone/go-cms-l10n/internal/pages"
	"github.com/goliatone/go-cms-l10n/internal/settings"
	"github.com/goliatone/go-cms-l10n/internal/translations"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type (
	Page             = pages.Page
	PageLocalization = pages.PageLocalization
	PageRepository   = pages.PageRepository
	Notice           = pages.Notice

	PageSubmit = hooks.PageSubmit
	PageDelete = hooks.PageDelete
	PageLoad   = hooks.PageLoad

	FieldDefinition  = translations.FieldDefinition
	TranslatorInput  = translations.Request
	TranslatorResult = translations.Result
	WidgetDefinition = forms.Definition

	Settings      = settings.Settings
	SettingsInput = settings.Input

	ButtonRow = l10nhttp.ButtonRow
	Message   = messages.Message

	Logger         = interfaces.Logger
	LoggerProvider = interfaces.LoggerProvider
	Notifier       = interfaces.Notifier
	Labels         = interfaces.Labels
)

const (
	InputText     = forms.InputText
	InputTextarea = forms.InputTextarea
	InputCheckbox = forms.InputCheckbox
	InputSelect   = forms.InputSelect
)

// Option customises the runtime built by New.
type Option = di.Option

func WithBunDB(db *bun.DB) Option { return di.WithBunDB(db) }

func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return di.WithCache(service, serializer)
}

func WithLoggerProvider(provider LoggerProvider) Option { return di.WithLoggerProvider(provider) }

func WithNotifier(notifier Notifier) Option { return di.WithNotifier(notifier) }

func WithLabels(labels Labels) Option { return di.WithLabels(labels) }

// WithLabelFile merges a JSON label bundle over the built-in labels.
func WithLabelFile(path string) Option { return di.WithLabelFile(path) }

// WithPageRepository binds the host's page tree instead of the built-in one.
func WithPageRepository(repo PageRepository) Option { return di.WithPageRepository(repo) }

// WithFields registers translatable fields.
func WithFields(defs ...FieldDefinition) Option { return di.WithFieldDefinitions(defs...) }

// Module represents the top level l10n runtime façade.
type Module struct {
	container *di.Container
}

// New constructs the module using the provided configuration and optional
// overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Close releases storage opened by New.
func (m *Module) Close() error {
	return m.container.Close()
}

// Pages returns the page repository the hooks read from.
func (m *Module) Pages() PageRepository {
	return m.container.PageRepository()
}

// SubmitPage runs the submit hooks for a page the host just stored.
func (m *Module) SubmitPage(ctx context.Context, page *Page, isNew bool) error {
	return m.container.Hooks().DispatchPageSubmit(ctx, &PageSubmit{Page: page, IsNew: isNew})
}

// DeletePage runs the delete hooks. Call it before removing the page rows.
func (m *Module) DeletePage(ctx context.Context, pageID uuid.UUID) error {
	return m.container.Hooks().DispatchPageDelete(ctx, &PageDelete{PageID: pageID})
}

// LoadPage fills the page form defaults in evt.
func (m *Module) LoadPage(ctx context.Context, evt *PageLoad) error {
	return m.container.Hooks().DispatchPageLoad(ctx, evt)
}

// Localizations lists the localization rows of a page.
func (m *Module) Localizations(ctx context.Context, pageID uuid.UUID) ([]*PageLocalization, error) {
	return m.container.LocalizationRepository().ListByPage(ctx, pageID)
}

// Translate renders or applies the field translator. The language snapshot
// is taken from the current settings.
func (m *Module) Translate(ctx context.Context, in TranslatorInput) (*TranslatorResult, error) {
	snap, err := m.container.SettingsService().Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	in.Snapshot = snap
	return m.container.Translator().RenderOrApply(ctx, in)
}

func (m *Module) Settings(ctx context.Context) (Settings, error) {
	return m.container.SettingsService().Get(ctx)
}

// SaveSettings validates and stores the language configuration.
func (m *Module) SaveSettings(ctx context.Context, in SettingsInput) (Settings, error) {
	return m.container.SettingsService().Save(ctx, in)
}

// Snapshot returns the language configuration for one operation.
func (m *Module) Snapshot(ctx context.Context) (Snapshot, error) {
	return m.container.SettingsService().Snapshot(ctx)
}

// RegisterRoutes mounts the admin endpoints on mux.
func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	return m.container.AdminAPI().Register(mux)
}

// EditButton renders the list-view link to a page's localizations.
func (m *Module) EditButton(row ButtonRow, href string) template.HTML {
	return m.container.AdminAPI().EditButton(row, href)
}

// Messages drains the built-in message queue.
func (m *Module) Messages() []Message {
	if queue := m.container.Messages(); queue != nil {
		return queue.Drain()
	}
	return nil
}
