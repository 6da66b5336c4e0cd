package pagescmd

import (
	"context"

	"github.com/goliatone/go-cms-l10n/internal/commands"
	"github.com/goliatone/go-cms-l10n/internal/pages"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
	"github.com/google/uuid"
)

func pageFields(id uuid.UUID) map[string]any {
	if id == uuid.Nil {
		return nil
	}
	return map[string]any{"page_id": id}
}

// PropagateHandler creates localization rows for submitted pages.
type PropagateHandler struct {
	inner *commands.Handler[PropagateLocalizationsCommand]
}

func NewPropagateHandler(repo pages.PageRepository, propagator *pages.Propagator, snapshot SnapshotFunc, logger interfaces.Logger, opts ...commands.HandlerOption[PropagateLocalizationsCommand]) *PropagateHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg PropagateLocalizationsCommand) error {
		page, err := repo.GetByID(ctx, msg.PageID)
		if err != nil {
			return err
		}
		snap, err := snapshot(ctx)
		if err != nil {
			return err
		}
		_, err = propagator.Propagate(ctx, pages.PropagateRequest{Page: page, IsNew: msg.IsNew, Snapshot: snap})
		return err
	}
	handlerOpts := []commands.HandlerOption[PropagateLocalizationsCommand]{
		commands.WithLogger[PropagateLocalizationsCommand](baseLogger),
		commands.WithOperation[PropagateLocalizationsCommand]("pages.propagate"),
		commands.WithMessageFields(func(msg PropagateLocalizationsCommand) map[string]any {
			return pageFields(msg.PageID)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PropagateLocalizationsCommand](baseLogger)),
	}
	return &PropagateHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[PropagateLocalizationsCommand].Execute.
func (h *PropagateHandler) Execute(ctx context.Context, msg PropagateLocalizationsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncHandler keeps a root subtree on the root's language.
type SyncHandler struct {
	inner *commands.Handler[SyncDefaultLanguageCommand]
}

func NewSyncHandler(repo pages.PageRepository, synchronizer *pages.Synchronizer, logger interfaces.Logger, opts ...commands.HandlerOption[SyncDefaultLanguageCommand]) *SyncHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg SyncDefaultLanguageCommand) error {
		page, err := repo.GetByID(ctx, msg.PageID)
		if err != nil {
			return err
		}
		_, err = synchronizer.Sync(ctx, page)
		return err
	}
	handlerOpts := []commands.HandlerOption[SyncDefaultLanguageCommand]{
		commands.WithLogger[SyncDefaultLanguageCommand](baseLogger),
		commands.WithOperation[SyncDefaultLanguageCommand]("pages.sync_language"),
		commands.WithMessageFields(func(msg SyncDefaultLanguageCommand) map[string]any {
			return pageFields(msg.PageID)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncDefaultLanguageCommand](baseLogger)),
	}
	return &SyncHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[SyncDefaultLanguageCommand].Execute.
func (h *SyncHandler) Execute(ctx context.Context, msg SyncDefaultLanguageCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanupHandler removes localization rows of deleted pages.
type CleanupHandler struct {
	inner *commands.Handler[DeleteLocalizationsCommand]
}

func NewCleanupHandler(cleaner *pages.Cleaner, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteLocalizationsCommand]) *CleanupHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg DeleteLocalizationsCommand) error {
		_, err := cleaner.DeleteForPage(ctx, msg.PageID)
		return err
	}
	handlerOpts := []commands.HandlerOption[DeleteLocalizationsCommand]{
		commands.WithLogger[DeleteLocalizationsCommand](baseLogger),
		commands.WithOperation[DeleteLocalizationsCommand]("pages.delete_localizations"),
		commands.WithMessageFields(func(msg DeleteLocalizationsCommand) map[string]any {
			return pageFields(msg.PageID)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteLocalizationsCommand](baseLogger)),
	}
	return &CleanupHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[DeleteLocalizationsCommand].Execute.
func (h *CleanupHandler) Execute(ctx context.Context, msg DeleteLocalizationsCommand) error {
	return h.inner.Execute(ctx, msg)
}
