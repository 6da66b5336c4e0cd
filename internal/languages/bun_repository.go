package languages

import (
	"context"
	"fmt"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunRepository persists the catalog and serves reads through
// go-repository-cache when a cache service is supplied.
type BunRepository struct {
	repo repository.Repository[*Language]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache wraps the repository with a read cache. Either
// argument being nil disables caching.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewLanguageRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{repo: base}
}

func (r *BunRepository) Create(ctx context.Context, lang *Language) (*Language, error) {
	if lang == nil {
		return nil, fmt.Errorf("languages: nil language")
	}
	lang.Code = domain.NormalizeLanguage(lang.Code)
	return r.repo.Create(ctx, lang)
}

func (r *BunRepository) GetByCode(ctx context.Context, code string) (*Language, error) {
	record, err := r.repo.GetByIdentifier(ctx, domain.NormalizeLanguage(code))
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLanguageNotFound, code)
		}
		return nil, fmt.Errorf("language repository error: %w", err)
	}
	return record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Language, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("code ASC")
	}))
	return records, err
}
