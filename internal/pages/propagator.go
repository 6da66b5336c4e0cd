package pages

import (
	"context"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
)

// SortingStep is the gap between sorting values of consecutive localizations.
const SortingStep = 128

// PropagateRequest describes a page that was just saved.
type PropagateRequest struct {
	Page *Page
	// IsNew must be true only on the first save of the page. Any other save
	// is a no-op.
	IsNew    bool
	Snapshot runtimeconfig.Snapshot
}

// PropagateResult lists the localization rows that were created.
type PropagateResult struct {
	Localizations []*PageLocalization
	Skipped       bool
}

// Propagator creates the localization rows of newly created pages.
type Propagator struct {
	localizations LocalizationRepository
	opts          options
}

func NewPropagator(localizations LocalizationRepository, opts ...Option) *Propagator {
	return &Propagator{localizations: localizations, opts: resolveOptions(opts)}
}

// Propagate creates one localization per candidate language. Root pages use
// their own language list; other pages use the languages their parent is
// localized into, in the parent's sorting order. All rows are written in one
// batch.
func (p *Propagator) Propagate(ctx context.Context, req PropagateRequest) (*PropagateResult, error) {
	if req.Page == nil {
		return nil, ErrPageRequired
	}
	if !req.IsNew {
		return &PropagateResult{Skipped: true}, nil
	}
	page := req.Page
	logger := logging.WithPageContext(p.opts.logger, page.ID.String(), "")

	candidates, err := p.candidates(ctx, page)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		logger.Debug("pages.propagate.no_languages")
		return &PropagateResult{Localizations: []*PageLocalization{}}, nil
	}

	folderURL := req.Snapshot.FolderURL()
	now := p.opts.now()
	rows := make([]*PageLocalization, 0, len(candidates))
	for index, language := range candidates {
		parentAlias := ""
		if folderURL && !page.IsRoot() && page.ParentID != nil {
			parentLoc, lookupErr := p.parentLocalization(ctx, page, language)
			if lookupErr != nil {
				return nil, lookupErr
			}
			if !parentLoc.IsRoot() {
				parentAlias = parentLoc.Alias
			}
		}
		rows = append(rows, &PageLocalization{
			ID:          p.opts.id(),
			PageID:      page.ID,
			Language:    language,
			Type:        page.Type,
			Title:       page.Title,
			PageTitle:   page.PageTitle,
			Description: page.Description,
			CSSClass:    page.CSSClass,
			Start:       cloneTimePointer(page.Start),
			Stop:        cloneTimePointer(page.Stop),
			DateFormat:  page.DateFormat,
			TimeFormat:  page.TimeFormat,
			DatimFormat: page.DatimFormat,
			Published:   page.Published,
			Alias:       LocalizedAlias(page, folderURL, parentAlias),
			Sorting:     SortingStep * (index + 1),
			UpdatedAt:   now,
		})
	}

	if err := p.localizations.CreateBatch(ctx, rows); err != nil {
		logger.Error("pages.propagate.save_failed", "error", err)
		return nil, domain.NewError(domain.KindRuntimeSave, "pages.propagate", "could not store page localizations", err)
	}
	logger.Info("pages.propagate.created", "count", len(rows), "languages", candidates)
	return &PropagateResult{Localizations: rows}, nil
}

func (p *Propagator) candidates(ctx context.Context, page *Page) ([]string, error) {
	if page.IsRoot() {
		return domain.DistinctLanguages(page.Languages), nil
	}
	if page.ParentID == nil {
		return nil, nil
	}
	parentLocs, err := p.localizations.ListByPage(ctx, *page.ParentID)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(parentLocs))
	for _, loc := range parentLocs {
		codes = append(codes, loc.Language)
	}
	return domain.DistinctLanguages(codes), nil
}

// parentLocalization looks up the parent's row for language. A row removed
// since the candidate list was read is reported rather than producing an
// unprefixed alias.
func (p *Propagator) parentLocalization(ctx context.Context, page *Page, language string) (*PageLocalization, error) {
	loc, err := p.localizations.GetByPageAndLanguage(ctx, *page.ParentID, language)
	if err == nil {
		return loc, nil
	}
	if domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}
	return nil, domain.NewError(
		domain.KindMissingParentLocalization,
		"pages.propagate",
		"parent page has no localization for language "+language,
		err,
	)
}
