package translations

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/google/uuid"
)

// MemoryRepository keeps translations in process. The whole UpdateMany batch
// runs under one lock.
type MemoryRepository struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*Translation
	byKey    map[Key]uuid.UUID
	now      func() time.Time
	failNext error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:  make(map[uuid.UUID]*Translation),
		byKey: make(map[Key]uuid.UUID),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// FailNext makes the next UpdateMany call return err without writing.
func (m *MemoryRepository) FailNext(err error) {
	m.mu.Lock()
	m.failNext = err
	m.mu.Unlock()
}

func (m *MemoryRepository) Find(_ context.Context, key Key) (*Translation, error) {
	key = key.normalize()
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byKey[key]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "translation", Key: key.String()}
	}
	return cloneTranslation(m.byID[id]), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Translation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.byID[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "translation", Key: id.String()}
	}
	return cloneTranslation(record), nil
}

func (m *MemoryRepository) Create(_ context.Context, record *Translation) (*Translation, error) {
	if record == nil {
		return nil, ErrTranslationRequired
	}
	copied := cloneTranslation(record)
	key := copied.Key().normalize()
	if !validKey(key) {
		return nil, ErrKeyIncomplete
	}
	copied.ParentTable, copied.Field, copied.ParentID, copied.Language = key.Table, key.Field, key.ParentID, key.Language

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byKey[key]; exists {
		return nil, ErrDuplicateTranslation
	}
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if _, exists := m.byID[copied.ID]; exists {
		return nil, ErrDuplicateTranslation
	}
	if copied.UpdatedAt.IsZero() {
		copied.UpdatedAt = m.now()
	}
	m.byID[copied.ID] = copied
	m.byKey[key] = copied.ID
	return cloneTranslation(copied), nil
}

func (m *MemoryRepository) Update(_ context.Context, id uuid.UUID, patch Patch) (*Translation, error) {
	if patch.Value == nil {
		return nil, ErrValueRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.byID[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "translation", Key: id.String()}
	}
	m.apply(record, patch)
	return cloneTranslation(record), nil
}

func (m *MemoryRepository) UpdateMany(_ context.Context, patches []Patch) error {
	if len(patches) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	for _, patch := range patches {
		if patch.Value == nil {
			return ErrValueRequired
		}
		if _, ok := m.byID[patch.ID]; !ok {
			return &domain.NotFoundError{Resource: "translation", Key: patch.ID.String()}
		}
	}
	for _, patch := range patches {
		m.apply(m.byID[patch.ID], patch)
	}
	return nil
}

func (m *MemoryRepository) apply(record *Translation, patch Patch) {
	record.SetValue(patch.Value)
	record.UpdatedAt = patch.UpdatedAt
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = m.now()
	}
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.byID[id]
	if !ok {
		return &domain.NotFoundError{Resource: "translation", Key: id.String()}
	}
	delete(m.byKey, record.Key())
	delete(m.byID, id)
	return nil
}

func (m *MemoryRepository) ListByRecord(_ context.Context, table, parentID string) ([]*Translation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Translation
	for _, record := range m.byID {
		if record.ParentTable == table && record.ParentID == parentID {
			out = append(out, cloneTranslation(record))
		}
	}
	sortTranslations(out)
	return out, nil
}

func sortTranslations(records []*Translation) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Field != records[j].Field {
			return records[i].Field < records[j].Field
		}
		return records[i].Language < records[j].Language
	})
}
