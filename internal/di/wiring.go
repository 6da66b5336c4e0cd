package di

import (
	"context"

	"github.com/goliatone/go-cms-l10n/internal/commands"
	pagescmd "github.com/goliatone/go-cms-l10n/internal/commands/pages"
	settingscmd "github.com/goliatone/go-cms-l10n/internal/commands/settings"
	"github.com/goliatone/go-cms-l10n/internal/hooks"
	l10nhttp "github.com/goliatone/go-cms-l10n/internal/http"
	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/internal/pages"
)

func (c *Container) configureCommands() {
	logger := logging.CommandsLogger(c.loggerProvider)
	timeout := c.Config.Commands.Timeout.Std()

	c.propagateHandler = pagescmd.NewPropagateHandler(c.pageRepo, c.propagator, c.settingsSvc.Snapshot, logger,
		commands.WithTimeout[pagescmd.PropagateLocalizationsCommand](timeout))
	c.syncHandler = pagescmd.NewSyncHandler(c.pageRepo, c.synchronizer, logger,
		commands.WithTimeout[pagescmd.SyncDefaultLanguageCommand](timeout))
	c.cleanupHandler = pagescmd.NewCleanupHandler(c.cleaner, logger,
		commands.WithTimeout[pagescmd.DeleteLocalizationsCommand](timeout))
	c.saveSettings = settingscmd.NewSaveHandler(c.settingsSvc, logger,
		commands.WithTimeout[settingscmd.SaveSettingsCommand](timeout))
}

// configureHooks registers the page lifecycle handlers. Propagation runs
// before the language sync on submit.
func (c *Container) configureHooks() {
	c.hooks = hooks.NewRegistry(logging.HooksLogger(c.loggerProvider))

	c.hooks.OnPageSubmit(hooks.Handler[hooks.PageSubmit]{
		Name:     "propagate_localizations",
		Module:   Module,
		Priority: 0,
		Fn:       c.onSubmitPropagate,
	})
	c.hooks.OnPageSubmit(hooks.Handler[hooks.PageSubmit]{
		Name:     "sync_default_language",
		Module:   Module,
		Priority: 10,
		Fn:       c.onSubmitSync,
	})
	c.hooks.OnPageDelete(hooks.Handler[hooks.PageDelete]{
		Name:   "delete_localizations",
		Module: Module,
		Fn:     c.onDelete,
	})
	c.hooks.OnPageLoad(hooks.Handler[hooks.PageLoad]{
		Name:   "page_form_defaults",
		Module: Module,
		Fn:     c.onLoad,
	})
}

func (c *Container) onSubmitPropagate(ctx context.Context, evt *hooks.PageSubmit) error {
	if evt.Page == nil {
		return pages.ErrPageRequired
	}
	if c.Config.Features.Commands {
		return c.propagateHandler.Execute(ctx, pagescmd.PropagateLocalizationsCommand{PageID: evt.Page.ID, IsNew: evt.IsNew})
	}
	snap, err := c.settingsSvc.Snapshot(ctx)
	if err != nil {
		return err
	}
	_, err = c.propagator.Propagate(ctx, pages.PropagateRequest{Page: evt.Page, IsNew: evt.IsNew, Snapshot: snap})
	return err
}

func (c *Container) onSubmitSync(ctx context.Context, evt *hooks.PageSubmit) error {
	if evt.Page == nil {
		return pages.ErrPageRequired
	}
	if c.Config.Features.Commands {
		return c.syncHandler.Execute(ctx, pagescmd.SyncDefaultLanguageCommand{PageID: evt.Page.ID})
	}
	_, err := c.synchronizer.Sync(ctx, evt.Page)
	return err
}

func (c *Container) onDelete(ctx context.Context, evt *hooks.PageDelete) error {
	if c.Config.Features.Commands {
		return c.cleanupHandler.Execute(ctx, pagescmd.DeleteLocalizationsCommand{PageID: evt.PageID})
	}
	_, err := c.cleaner.DeleteForPage(ctx, evt.PageID)
	return err
}

// onLoad fills the page form defaults and queues root-domain notices.
func (c *Container) onLoad(ctx context.Context, evt *hooks.PageLoad) error {
	if evt.IsNew {
		lang, err := c.advisor.DefaultLanguage(ctx, evt.ParentID)
		if err != nil {
			return err
		}
		if lang == "" {
			lang = c.settingsSvc.Current().DefaultLanguage()
		}
		evt.DefaultLanguage = lang
	}

	requires, err := c.advisor.RequiresDNS(ctx)
	if err != nil {
		return err
	}
	evt.RequiresDNS = requires

	notices, err := c.advisor.CheckRootDomains(ctx)
	if err != nil {
		return err
	}
	evt.Notices = append(evt.Notices, notices...)
	for _, notice := range notices {
		switch notice.Code {
		case pages.NoticeMissingDNS:
			c.notifier.AddInfo(ctx, c.labels.Label(ctx, "MSC.i18nl10n_missingDNS", notice.Title))
		case pages.NoticeDuplicatedDNS:
			c.notifier.AddInfo(ctx, c.labels.Label(ctx, "MSC.i18nl10n_duplicatedDNS", notice.Title, notice.DNS))
		}
	}
	return nil
}

func (c *Container) configureAdmin() {
	opts := []l10nhttp.AdminOption{
		l10nhttp.WithBasePath(c.Config.HTTP.BasePath),
		l10nhttp.WithTranslator(c.translator),
		l10nhttp.WithSettings(c.settingsSvc),
		l10nhttp.WithLocalizations(c.localizationRepo),
		l10nhttp.WithLabels(c.labels),
		l10nhttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	if c.Config.Features.Commands {
		opts = append(opts, l10nhttp.WithSettingsSaver(c.saveSettings))
	}
	c.admin = l10nhttp.NewAdminAPI(opts...)
}
