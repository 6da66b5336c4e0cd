package translations

import (
	"context"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrTranslationRequired  = errors.New("translations: translation is required")
	ErrKeyIncomplete        = errors.New("translations: table, field, parent id and language are required")
	ErrDuplicateTranslation = errors.New("translations: translation already exists")
	ErrValueRequired        = errors.New("translations: patch value is required")
)

// Repository stores generic field translations. Create reports
// ErrDuplicateTranslation when a row with the same key exists; UpdateMany
// applies every patch or none.
type Repository interface {
	Find(ctx context.Context, key Key) (*Translation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Translation, error)
	Create(ctx context.Context, record *Translation) (*Translation, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Translation, error)
	UpdateMany(ctx context.Context, patches []Patch) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRecord(ctx context.Context, table, parentID string) ([]*Translation, error)
}

func NewTranslationRepository(db *bun.DB) repository.Repository[*Translation] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Translation]{
		NewRecord: func() *Translation { return &Translation{} },
		GetID: func(t *Translation) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Translation, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(t *Translation) string {
			return t.ID.String()
		},
	})
}

func validKey(key Key) bool {
	return key.Table != "" && key.Field != "" && key.ParentID != "" && key.Language != ""
}
