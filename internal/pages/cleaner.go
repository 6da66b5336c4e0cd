package pages

import (
	"context"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/google/uuid"
)

// Cleaner removes localization rows of deleted pages.
type Cleaner struct {
	pages         PageRepository
	localizations LocalizationRepository
	opts          options
}

func NewCleaner(pages PageRepository, localizations LocalizationRepository, opts ...Option) *Cleaner {
	return &Cleaner{pages: pages, localizations: localizations, opts: resolveOptions(opts)}
}

// DeleteForPage deletes the localizations of pageID and of all its
// descendants. It must run before the host removes the page rows, since the
// subtree is read from the page repository.
func (c *Cleaner) DeleteForPage(ctx context.Context, pageID uuid.UUID) (int, error) {
	if pageID == uuid.Nil {
		return 0, ErrPageIDRequired
	}
	ids, err := CollectDescendantIDs(ctx, c.pages, pageID)
	if err != nil {
		return 0, err
	}
	ids = append(ids, pageID)

	deleted, err := c.localizations.DeleteByPageIDs(ctx, ids)
	if err != nil {
		logging.WithPageContext(c.opts.logger, pageID.String(), "").Error("pages.cleanup.failed", "error", err)
		return 0, domain.NewError(domain.KindRuntimeSave, "pages.cleanup", "could not delete page localizations", err)
	}
	logging.WithPageContext(c.opts.logger, pageID.String(), "").Info("pages.cleanup.deleted", "pages", len(ids), "rows", deleted)
	return deleted, nil
}
