package languages

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/identity"
	"github.com/google/uuid"
)

// MemoryRepository keeps the catalog in a map keyed by code.
type MemoryRepository struct {
	mu        sync.RWMutex
	languages map[string]*Language
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{languages: make(map[string]*Language)}
}

func (m *MemoryRepository) Create(_ context.Context, lang *Language) (*Language, error) {
	if lang == nil {
		return nil, fmt.Errorf("languages: nil language")
	}
	code := domain.NormalizeLanguage(lang.Code)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.languages[code]; exists {
		return nil, fmt.Errorf("languages: code %q already exists", code)
	}
	copied := *lang
	copied.Code = code
	if copied.ID == uuid.Nil {
		copied.ID = identity.LanguageUUID(code)
	}
	m.languages[code] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) GetByCode(_ context.Context, code string) (*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lang, ok := m.languages[domain.NormalizeLanguage(code)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotFound, code)
	}
	copied := *lang
	return &copied, nil
}

func (m *MemoryRepository) List(context.Context) ([]*Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Language, 0, len(m.languages))
	for _, lang := range m.languages {
		copied := *lang
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
