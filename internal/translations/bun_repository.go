package translations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Translation]
	now  func() time.Time
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:   db,
		repo: NewTranslationRepository(db),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *BunRepository) Find(ctx context.Context, key Key) (*Translation, error) {
	key = key.normalize()
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.parent_table = ?", key.Table).
				Where("?TableAlias.field = ?", key.Field).
				Where("?TableAlias.parent_id = ?", key.ParentID).
				Where("?TableAlias.language = ?", key.Language)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, key.String())
	}
	if len(records) == 0 {
		return nil, &domain.NotFoundError{Resource: "translation", Key: key.String()}
	}
	return records[0], nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Translation, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

// Create inserts the row and reports ErrDuplicateTranslation when the unique
// key or id is already taken, leaving the existing row untouched.
func (r *BunRepository) Create(ctx context.Context, record *Translation) (*Translation, error) {
	if record == nil {
		return nil, ErrTranslationRequired
	}
	copied := cloneTranslation(record)
	key := copied.Key().normalize()
	if !validKey(key) {
		return nil, ErrKeyIncomplete
	}
	copied.ParentTable, copied.Field, copied.ParentID, copied.Language = key.Table, key.Field, key.ParentID, key.Language
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if copied.UpdatedAt.IsZero() {
		copied.UpdatedAt = r.now()
	}
	res, err := r.db.NewInsert().Model(copied).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("insert translation: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, ErrDuplicateTranslation
	}
	return copied, nil
}

func (r *BunRepository) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Translation, error) {
	patch.ID = id
	if err := r.UpdateMany(ctx, []Patch{patch}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// UpdateMany writes every patch in one transaction.
func (r *BunRepository) UpdateMany(ctx context.Context, patches []Patch) error {
	if len(patches) == 0 {
		return nil
	}
	for _, patch := range patches {
		if patch.Value == nil {
			return ErrValueRequired
		}
	}
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, patch := range patches {
			stamp := patch.UpdatedAt
			if stamp.IsZero() {
				stamp = r.now()
			}
			res, err := tx.NewUpdate().
				Model((*Translation)(nil)).
				Set("? = ?", bun.Ident(patch.Value.Slot().Column()), columnValue(patch.Value)).
				Set("updated_at = ?", stamp).
				Where("id = ?", patch.ID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("update translation %s: %w", patch.ID, err)
			}
			if affected, _ := res.RowsAffected(); affected == 0 {
				return &domain.NotFoundError{Resource: "translation", Key: patch.ID.String()}
			}
		}
		return nil
	})
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Translation{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

func (r *BunRepository) ListByRecord(ctx context.Context, table, parentID string) ([]*Translation, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.parent_table = ?", table).
				Where("?TableAlias.parent_id = ?", parentID).
				OrderExpr("?TableAlias.field ASC, ?TableAlias.language ASC")
		}),
	)
	if err != nil {
		return nil, mapRepositoryError(err, table+"#"+parentID)
	}
	return records, nil
}

func columnValue(v Value) any {
	switch typed := v.(type) {
	case BinaryValue:
		return []byte(typed)
	case StructuredValue:
		return []byte(typed)
	default:
		return v.String()
	}
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &domain.NotFoundError{Resource: "translation", Key: key}
	}
	return fmt.Errorf("translation repository error: %w", err)
}
