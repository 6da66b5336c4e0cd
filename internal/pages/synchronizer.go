package pages

import (
	"context"
	"strings"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/logging"
)

// SyncResult reports what Sync did.
type SyncResult struct {
	// Skipped is true for non-root pages.
	Skipped bool
	// Unchanged is true when a direct child already uses the root language.
	Unchanged bool
	Updated   int
}

// Synchronizer pushes a root page's language down its subtree.
type Synchronizer struct {
	pages PageRepository
	opts  options
}

func NewSynchronizer(pages PageRepository, opts ...Option) *Synchronizer {
	return &Synchronizer{pages: pages, opts: resolveOptions(opts)}
}

// Sync sets root.Language on every descendant unless at least one direct
// child already has that language.
func (s *Synchronizer) Sync(ctx context.Context, root *Page) (*SyncResult, error) {
	if root == nil {
		return nil, ErrPageRequired
	}
	if !root.IsRoot() {
		return &SyncResult{Skipped: true}, nil
	}
	language := strings.TrimSpace(root.Language)
	logger := logging.WithPageContext(s.opts.logger, root.ID.String(), language)

	children, err := s.pages.ListChildren(ctx, root.ID)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if domain.SameLanguage(child.Language, language) {
			return &SyncResult{Unchanged: true}, nil
		}
	}

	ids, err := CollectDescendantIDs(ctx, s.pages, root.ID)
	if err != nil {
		return nil, err
	}
	updated, err := s.pages.SetLanguage(ctx, ids, language)
	if err != nil {
		logger.Error("pages.sync.save_failed", "error", err)
		return nil, domain.NewError(domain.KindRuntimeSave, "pages.sync", "could not update subtree language", err)
	}
	logger.Info("pages.sync.updated", "count", updated)
	return &SyncResult{Updated: updated}, nil
}
