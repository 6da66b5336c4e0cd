package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// inChunk bounds IN (...) lists so large subtrees stay under driver limits.
const inChunk = 500

type BunPageRepository struct {
	db   *bun.DB
	repo repository.Repository[*Page]
}

func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return &BunPageRepository{db: db, repo: NewPageRepository(db)}
}

func (r *BunPageRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	if record == nil {
		return nil, ErrPageRequired
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Type == "" {
		record.Type = domain.PageTypeRegular
	}
	return r.repo.Create(ctx, record)
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return result, nil
}

func (r *BunPageRepository) Update(ctx context.Context, record *Page) (*Page, error) {
	if record == nil {
		return nil, ErrPageRequired
	}
	record.UpdatedAt = time.Now().UTC()
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"parent_id",
			"type",
			"language",
			"languages",
			"dns",
			"title",
			"page_title",
			"description",
			"css_class",
			"start_at",
			"stop_at",
			"date_format",
			"time_format",
			"datim_format",
			"published",
			"alias",
			"sorting",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page", record.ID.String())
	}
	return updated, nil
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Page{ID: id}); err != nil {
		return mapRepositoryError(err, "page", id.String())
	}
	return nil
}

func (r *BunPageRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.parent_id = ?", parentID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sorting ASC")
		}),
	)
	return records, err
}

func (r *BunPageRepository) ListRoots(ctx context.Context) ([]*Page, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.type = ?", domain.PageTypeRoot)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sorting ASC")
		}),
	)
	return records, err
}

func (r *BunPageRepository) SetLanguage(ctx context.Context, ids []uuid.UUID, language string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if r.db == nil {
		return 0, fmt.Errorf("page repository: database not configured")
	}
	updated := 0
	now := time.Now().UTC()
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for start := 0; start < len(ids); start += inChunk {
			end := min(start+inChunk, len(ids))
			res, err := tx.NewUpdate().
				Model((*Page)(nil)).
				Set("language = ?", language).
				Set("updated_at = ?", now).
				Where("id IN (?)", bun.In(ids[start:end])).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("update page language: %w", err)
			}
			affected, _ := res.RowsAffected()
			updated += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

type BunLocalizationRepository struct {
	db   *bun.DB
	repo repository.Repository[*PageLocalization]
}

func NewBunLocalizationRepository(db *bun.DB) *BunLocalizationRepository {
	return &BunLocalizationRepository{db: db, repo: NewLocalizationRepository(db)}
}

func (r *BunLocalizationRepository) CreateBatch(ctx context.Context, rows []*PageLocalization) error {
	if len(rows) == 0 {
		return nil
	}
	if r.db == nil {
		return fmt.Errorf("localization repository: database not configured")
	}
	toInsert := make([]*PageLocalization, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		copied := cloneLocalization(row)
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		copied.Language = strings.TrimSpace(copied.Language)
		toInsert = append(toInsert, copied)
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&toInsert).Exec(ctx); err != nil {
			return fmt.Errorf("insert page localizations: %w", err)
		}
		return nil
	})
}

func (r *BunLocalizationRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*PageLocalization, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.sorting ASC, ?TableAlias.language ASC")
		}),
	)
	return records, err
}

func (r *BunLocalizationRepository) GetByPageAndLanguage(ctx context.Context, pageID uuid.UUID, language string) (*PageLocalization, error) {
	key := pageID.String() + "/" + language
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.page_id = ?", pageID).
				Where("LOWER(?TableAlias.language) = ?", domain.NormalizeLanguage(language))
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "page_localization", key)
	}
	if len(records) == 0 {
		return nil, &domain.NotFoundError{Resource: "page_localization", Key: key}
	}
	return records[0], nil
}

func (r *BunLocalizationRepository) DeleteByPageIDs(ctx context.Context, pageIDs []uuid.UUID) (int, error) {
	if len(pageIDs) == 0 {
		return 0, nil
	}
	if r.db == nil {
		return 0, fmt.Errorf("localization repository: database not configured")
	}
	deleted := 0
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for start := 0; start < len(pageIDs); start += inChunk {
			end := min(start+inChunk, len(pageIDs))
			res, err := tx.NewDelete().
				Model((*PageLocalization)(nil)).
				Where("page_id IN (?)", bun.In(pageIDs[start:end])).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("delete page localizations: %w", err)
			}
			affected, _ := res.RowsAffected()
			deleted += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &domain.NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
