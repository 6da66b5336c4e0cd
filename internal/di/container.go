package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	pagescmd "github.com/goliatone/go-cms-l10n/internal/commands/pages"
	settingscmd "github.com/goliatone/go-cms-l10n/internal/commands/settings"
	"github.com/goliatone/go-cms-l10n/internal/hooks"
	"github.com/goliatone/go-cms-l10n/internal/i18n"
	l10nhttp "github.com/goliatone/go-cms-l10n/internal/http"
	"github.com/goliatone/go-cms-l10n/internal/languages"
	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/internal/logging/console"
	"github.com/goliatone/go-cms-l10n/internal/logging/gologger"
	"github.com/goliatone/go-cms-l10n/internal/messages"
	"github.com/goliatone/go-cms-l10n/internal/pages"
	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
	"github.com/goliatone/go-cms-l10n/internal/settings"
	"github.com/goliatone/go-cms-l10n/internal/translations"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
	"github.com/goliatone/go-cms-l10n/pkg/storage"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Module is the name used when the container registers hook handlers.
const Module = "l10n"

// Container wires the l10n runtime: repositories, page services, the field
// translator, hook handlers and the admin API.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	notifier       interfaces.Notifier
	labels         interfaces.Labels
	queue          *messages.Queue
	labelFiles     []string
	fieldDefs      []translations.FieldDefinition

	languageRepo     languages.Repository
	pageRepo         pages.PageRepository
	localizationRepo pages.LocalizationRepository
	settingsRepo     settings.Repository
	translationRepo  translations.Repository

	settingsSvc  *settings.Service
	propagator   *pages.Propagator
	synchronizer *pages.Synchronizer
	cleaner      *pages.Cleaner
	advisor      *pages.Advisor
	fields       *translations.Registry
	translator   *translations.Controller
	hooks        *hooks.Registry
	admin        *l10nhttp.AdminAPI

	propagateHandler *pagescmd.PropagateHandler
	syncHandler      *pagescmd.SyncHandler
	cleanupHandler   *pagescmd.CleanupHandler
	saveSettings     *settingscmd.SaveHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an open database. Repositories switch to their bun
// implementations and the container does not close the handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service used for the language catalog.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithNotifier routes user-facing messages to the host instead of the
// built-in queue.
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(c *Container) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

func WithLabels(labels interfaces.Labels) Option {
	return func(c *Container) {
		if labels != nil {
			c.labels = labels
		}
	}
}

// WithLabelFile merges a JSON label bundle over the built-in labels. It has
// no effect when WithLabels is used.
func WithLabelFile(path string) Option {
	return func(c *Container) {
		if path != "" {
			c.labelFiles = append(c.labelFiles, path)
		}
	}
}

// WithPageRepository binds the host's page tree.
func WithPageRepository(repo pages.PageRepository) Option {
	return func(c *Container) {
		if repo != nil {
			c.pageRepo = repo
		}
	}
}

// WithFieldDefinitions registers translatable fields at startup.
func WithFieldDefinitions(defs ...translations.FieldDefinition) Option {
	return func(c *Container) {
		c.fieldDefs = append(c.fieldDefs, defs...)
	}
}

// NewContainer validates cfg and builds every component.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL.Std(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.seedLanguages(context.Background()); err != nil {
		c.closeOwned()
		return nil, err
	}
	if err := c.configureLabels(context.Background()); err != nil {
		c.closeOwned()
		return nil, err
	}
	c.configureServices()
	if err := c.configureFields(); err != nil {
		c.closeOwned()
		return nil, err
	}
	c.configureCommands()
	c.configureHooks()
	c.configureAdmin()

	logging.RootLogger(c.loggerProvider).Info("l10n.container.ready",
		"storage", c.storageProvider(),
		"commands", c.Config.Features.Commands,
		"fields", len(c.fieldDefs),
	)
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		level := console.LevelError
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
		return nil
	}
	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) storageProvider() string {
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if provider == "" {
		return storage.DriverMemory
	}
	return provider
}

func (c *Container) configureStorage() error {
	if c.bunDB == nil && storage.IsSQL(c.Config.Storage.Provider) {
		db, err := storage.Open(storage.Config{
			Driver: c.Config.Storage.Provider,
			DSN:    c.Config.Storage.DSN,
		})
		if err != nil {
			return fmt.Errorf("di: open storage: %w", err)
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if c.bunDB == nil {
		return nil
	}
	if err := storage.EnsureSchema(context.Background(), c.bunDB, Models()...); err != nil {
		c.closeOwned()
		return fmt.Errorf("di: ensure schema: %w", err)
	}
	return nil
}

// Models lists the bun models owned by the l10n runtime.
func Models() []any {
	return []any{
		(*languages.Language)(nil),
		(*pages.Page)(nil),
		(*pages.PageLocalization)(nil),
		(*translations.Translation)(nil),
		settings.SettingsModel(),
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			logging.RootLogger(c.loggerProvider).Warn("l10n.cache.disabled", "error", err)
			return
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		c.languageRepo = languages.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		if c.pageRepo == nil {
			c.pageRepo = pages.NewBunPageRepository(c.bunDB)
		}
		c.localizationRepo = pages.NewBunLocalizationRepository(c.bunDB)
		c.settingsRepo = settings.NewBunRepository(c.bunDB)
		c.translationRepo = translations.NewBunRepository(c.bunDB)
		return
	}
	c.languageRepo = languages.NewMemoryRepository()
	if c.pageRepo == nil {
		c.pageRepo = pages.NewMemoryPageRepository()
	}
	c.localizationRepo = pages.NewMemoryLocalizationRepository()
	c.settingsRepo = settings.NewMemoryRepository()
	c.translationRepo = translations.NewMemoryRepository()
}

func (c *Container) seedLanguages(ctx context.Context) error {
	created, err := languages.Seed(ctx, c.languageRepo)
	if err != nil {
		return fmt.Errorf("di: seed languages: %w", err)
	}
	if created > 0 {
		logging.RootLogger(c.loggerProvider).Debug("l10n.languages.seeded", "count", created)
	}
	return nil
}

// configureLabels builds the localized label catalog over the English
// defaults.
func (c *Container) configureLabels(ctx context.Context) error {
	if c.labels != nil {
		return nil
	}
	catalog, err := i18n.DefaultCatalog(messages.DefaultLabels())
	if err != nil {
		return fmt.Errorf("di: load labels: %w", err)
	}
	for _, path := range c.labelFiles {
		fx, err := i18n.NewLoader(path).Load(ctx)
		if err != nil {
			return fmt.Errorf("di: load labels: %w", err)
		}
		catalog.Merge(fx)
	}
	c.labels = catalog
	return nil
}

func (c *Container) configureServices() {
	if c.queue == nil {
		c.queue = messages.NewQueue()
	}
	if c.notifier == nil {
		c.notifier = c.queue
	}

	pagesLogger := logging.PagesLogger(c.loggerProvider)
	c.settingsSvc = settings.NewService(c.settingsRepo, c.languageRepo, c.Config,
		settings.WithLogger(logging.SettingsLogger(c.loggerProvider)),
		settings.WithRootLister(c.pageRepo),
	)
	c.propagator = pages.NewPropagator(c.localizationRepo, pages.WithLogger(pagesLogger))
	c.synchronizer = pages.NewSynchronizer(c.pageRepo, pages.WithLogger(pagesLogger))
	c.cleaner = pages.NewCleaner(c.pageRepo, c.localizationRepo, pages.WithLogger(pagesLogger))
	c.advisor = pages.NewAdvisor(c.pageRepo, pages.WithLogger(pagesLogger))
}

func (c *Container) configureFields() error {
	c.fields = translations.NewRegistry()
	for _, def := range c.fieldDefs {
		if err := c.fields.Register(def); err != nil {
			return fmt.Errorf("di: register field %s.%s: %w", def.Table, def.Field, err)
		}
	}
	c.translator = translations.NewController(c.translationRepo, c.fields,
		translations.WithNotifier(c.notifier),
		translations.WithLabels(c.labels),
		translations.WithLanguageCatalog(c.languageRepo),
		translations.WithLogger(logging.TranslationsLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) closeOwned() {
	if c.ownsDB && c.bunDB != nil {
		_ = c.bunDB.Close()
		c.bunDB = nil
		c.ownsDB = false
	}
}

// Close releases the database handle when the container opened it.
func (c *Container) Close() error {
	if c.ownsDB && c.bunDB != nil {
		err := c.bunDB.Close()
		c.bunDB = nil
		c.ownsDB = false
		return err
	}
	return nil
}

// DB returns the bun handle, or nil for in-memory storage.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) Notifier() interfaces.Notifier {
	return c.notifier
}

// Messages returns the built-in message queue. It stays empty when the host
// supplied its own notifier.
func (c *Container) Messages() *messages.Queue {
	return c.queue
}

func (c *Container) Labels() interfaces.Labels {
	return c.labels
}

func (c *Container) LanguageRepository() languages.Repository {
	return c.languageRepo
}

func (c *Container) PageRepository() pages.PageRepository {
	return c.pageRepo
}

func (c *Container) LocalizationRepository() pages.LocalizationRepository {
	return c.localizationRepo
}

func (c *Container) TranslationRepository() translations.Repository {
	return c.translationRepo
}

func (c *Container) SettingsService() *settings.Service {
	return c.settingsSvc
}

func (c *Container) Propagator() *pages.Propagator {
	return c.propagator
}

func (c *Container) Synchronizer() *pages.Synchronizer {
	return c.synchronizer
}

func (c *Container) Cleaner() *pages.Cleaner {
	return c.cleaner
}

func (c *Container) Advisor() *pages.Advisor {
	return c.advisor
}

func (c *Container) Fields() *translations.Registry {
	return c.fields
}

func (c *Container) Translator() *translations.Controller {
	return c.translator
}

func (c *Container) Hooks() *hooks.Registry {
	return c.hooks
}

func (c *Container) AdminAPI() *l10nhttp.AdminAPI {
	return c.admin
}

func (c *Container) PropagateHandler() *pagescmd.PropagateHandler {
	return c.propagateHandler
}

func (c *Container) SyncHandler() *pagescmd.SyncHandler {
	return c.syncHandler
}

func (c *Container) CleanupHandler() *pagescmd.CleanupHandler {
	return c.cleanupHandler
}

func (c *Container) SaveSettingsHandler() *settingscmd.SaveHandler {
	return c.saveSettings
}
