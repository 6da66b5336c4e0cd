package pages

import (
	"context"
	"errors"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrPageRequired          = errors.New("pages: page is required")
	ErrPageIDRequired        = errors.New("pages: page id is required")
	ErrParentCycle           = errors.New("pages: parent chain contains a cycle")
	ErrLocalizationsRequired = errors.New("pages: localizations repository is required")
)

// PageRepository is the host page store.
type PageRepository interface {
	Create(ctx context.Context, record *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	Update(ctx context.Context, record *Page) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListChildren returns the direct children of parentID ordered by sorting.
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Page, error)
	// ListRoots returns every root page ordered by sorting.
	ListRoots(ctx context.Context) ([]*Page, error)
	// SetLanguage sets the language of every listed page in one transaction
	// and returns the number of updated rows.
	SetLanguage(ctx context.Context, ids []uuid.UUID, language string) (int, error)
}

// LocalizationRepository stores page localization rows.
type LocalizationRepository interface {
	// CreateBatch inserts all rows or none.
	CreateBatch(ctx context.Context, rows []*PageLocalization) error
	// ListByPage returns the localizations of pageID ordered by sorting.
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*PageLocalization, error)
	GetByPageAndLanguage(ctx context.Context, pageID uuid.UUID, language string) (*PageLocalization, error)
	// DeleteByPageIDs removes every localization of the listed pages in one
	// transaction and returns the number of deleted rows.
	DeleteByPageIDs(ctx context.Context, pageIDs []uuid.UUID) (int, error)
}

func NewPageRepository(db *bun.DB) repository.Repository[*Page] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Page]{
		NewRecord: func() *Page { return &Page{} },
		GetID: func(p *Page) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Page, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "alias"
		},
		GetIdentifierValue: func(p *Page) string {
			return p.Alias
		},
	})
}

func NewLocalizationRepository(db *bun.DB) repository.Repository[*PageLocalization] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PageLocalization]{
		NewRecord: func() *PageLocalization { return &PageLocalization{} },
		GetID: func(l *PageLocalization) uuid.UUID {
			return l.ID
		},
		SetID: func(l *PageLocalization, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "alias"
		},
		GetIdentifierValue: func(l *PageLocalization) string {
			return l.Alias
		},
	})
}
