package pages

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/google/uuid"
)

// MemoryPageRepository is an in-memory page store for tests and demos.
type MemoryPageRepository struct {
	mu    sync.RWMutex
	pages map[uuid.UUID]*Page
	now   func() time.Time
}

func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		pages: make(map[uuid.UUID]*Page),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryPageRepository) Create(_ context.Context, record *Page) (*Page, error) {
	if record == nil {
		return nil, ErrPageRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := clonePage(record)
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if copied.Type == "" {
		copied.Type = domain.PageTypeRegular
	}
	now := m.now()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	if copied.UpdatedAt.IsZero() {
		copied.UpdatedAt = now
	}
	m.pages[copied.ID] = copied
	return clonePage(copied), nil
}

func (m *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "page", Key: id.String()}
	}
	return clonePage(page), nil
}

func (m *MemoryPageRepository) Update(_ context.Context, record *Page) (*Page, error) {
	if record == nil {
		return nil, ErrPageRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.pages[record.ID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "page", Key: record.ID.String()}
	}
	updated := clonePage(record)
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = m.now()
	m.pages[record.ID] = updated
	return clonePage(updated), nil
}

func (m *MemoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pages[id]; !ok {
		return &domain.NotFoundError{Resource: "page", Key: id.String()}
	}
	delete(m.pages, id)
	return nil
}

func (m *MemoryPageRepository) ListChildren(_ context.Context, parentID uuid.UUID) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Page{}
	for _, page := range m.pages {
		if page.ParentID != nil && *page.ParentID == parentID {
			out = append(out, clonePage(page))
		}
	}
	sortPages(out)
	return out, nil
}

func (m *MemoryPageRepository) ListRoots(context.Context) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Page{}
	for _, page := range m.pages {
		if page.IsRoot() {
			out = append(out, clonePage(page))
		}
	}
	sortPages(out)
	return out, nil
}

// SetLanguage holds the write lock for the whole batch.
func (m *MemoryPageRepository) SetLanguage(_ context.Context, ids []uuid.UUID, language string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	updated := 0
	for _, id := range ids {
		page, ok := m.pages[id]
		if !ok {
			continue
		}
		page.Language = language
		page.UpdatedAt = now
		updated++
	}
	return updated, nil
}

func sortPages(items []*Page) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Sorting != items[j].Sorting {
			return items[i].Sorting < items[j].Sorting
		}
		return items[i].ID.String() < items[j].ID.String()
	})
}

// MemoryLocalizationRepository stores localization rows keyed by page and
// language.
type MemoryLocalizationRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]map[string]*PageLocalization

	// failNext makes the next CreateBatch or DeleteByPageIDs fail; tests use
	// it to exercise rollback paths.
	failNext error
}

func NewMemoryLocalizationRepository() *MemoryLocalizationRepository {
	return &MemoryLocalizationRepository{rows: make(map[uuid.UUID]map[string]*PageLocalization)}
}

// FailNext arms a one-shot write failure.
func (m *MemoryLocalizationRepository) FailNext(err error) {
	m.mu.Lock()
	m.failNext = err
	m.mu.Unlock()
}

func (m *MemoryLocalizationRepository) CreateBatch(_ context.Context, rows []*PageLocalization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	staged := make(map[uuid.UUID]map[string]*PageLocalization)
	for _, row := range rows {
		if row == nil {
			continue
		}
		lang := domain.NormalizeLanguage(row.Language)
		if _, exists := m.rows[row.PageID][lang]; exists {
			return &duplicateLocalizationError{pageID: row.PageID, language: lang}
		}
		if _, exists := staged[row.PageID][lang]; exists {
			return &duplicateLocalizationError{pageID: row.PageID, language: lang}
		}
		copied := cloneLocalization(row)
		copied.Language = strings.TrimSpace(row.Language)
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		if staged[row.PageID] == nil {
			staged[row.PageID] = make(map[string]*PageLocalization)
		}
		staged[row.PageID][lang] = copied
	}
	for pageID, byLang := range staged {
		if m.rows[pageID] == nil {
			m.rows[pageID] = make(map[string]*PageLocalization)
		}
		for lang, row := range byLang {
			m.rows[pageID][lang] = row
		}
	}
	return nil
}

func (m *MemoryLocalizationRepository) ListByPage(_ context.Context, pageID uuid.UUID) ([]*PageLocalization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*PageLocalization, 0, len(m.rows[pageID]))
	for _, row := range m.rows[pageID] {
		out = append(out, cloneLocalization(row))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sorting != out[j].Sorting {
			return out[i].Sorting < out[j].Sorting
		}
		return out[i].Language < out[j].Language
	})
	return out, nil
}

func (m *MemoryLocalizationRepository) GetByPageAndLanguage(_ context.Context, pageID uuid.UUID, language string) (*PageLocalization, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	row, ok := m.rows[pageID][domain.NormalizeLanguage(language)]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "page_localization", Key: pageID.String() + "/" + language}
	}
	return cloneLocalization(row), nil
}

func (m *MemoryLocalizationRepository) DeleteByPageIDs(_ context.Context, pageIDs []uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	deleted := 0
	for _, id := range pageIDs {
		deleted += len(m.rows[id])
		delete(m.rows, id)
	}
	return deleted, nil
}

func (m *MemoryLocalizationRepository) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

type duplicateLocalizationError struct {
	pageID   uuid.UUID
	language string
}

func (e *duplicateLocalizationError) Error() string {
	return "pages: localization for page " + e.pageID.String() + " and language " + e.language + " already exists"
}
