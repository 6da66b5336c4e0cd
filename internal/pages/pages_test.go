package pages

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
	"github.com/google/uuid"
)

var fixedNow = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	pages         *MemoryPageRepository
	localizations *MemoryLocalizationRepository
	propagator    *Propagator
}

func newFixture() *fixture {
	pages := NewMemoryPageRepository()
	locs := NewMemoryLocalizationRepository()
	return &fixture{
		pages:         pages,
		localizations: locs,
		propagator:    NewPropagator(locs, WithClock(func() time.Time { return fixedNow })),
	}
}

func (f *fixture) create(t *testing.T, page *Page, snap runtimeconfig.Snapshot) []*PageLocalization {
	t.Helper()
	ctx := context.Background()
	created, err := f.pages.Create(ctx, page)
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	res, err := f.propagator.Propagate(ctx, PropagateRequest{Page: created, IsNew: true, Snapshot: snap})
	if err != nil {
		t.Fatalf("propagate %s: %v", page.Title, err)
	}
	return res.Localizations
}

func snapshot(folderURL bool) runtimeconfig.Snapshot {
	return runtimeconfig.NewSnapshot(runtimeconfig.SnapshotInput{
		DefaultLanguage: "en",
		Languages:       []string{"en", "de"},
		FolderURL:       folderURL,
	})
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestPropagateRootCreatesOneRowPerLanguage(t *testing.T) {
	f := newFixture()
	rootID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	rows := f.create(t, &Page{
		ID:        rootID,
		Type:      domain.PageTypeRoot,
		Title:     "Home",
		Alias:     "home",
		Languages: []string{"en", "de"},
		Published: true,
	}, snapshot(false))

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Language != "en" || rows[0].Sorting != 128 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Language != "de" || rows[1].Sorting != 256 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
	wantAlias := "home-0" + rootID.String()
	for _, row := range rows {
		if row.Alias != wantAlias {
			t.Fatalf("expected alias %q, got %q", wantAlias, row.Alias)
		}
		if !row.Published || row.Title != "Home" || !row.UpdatedAt.Equal(fixedNow) {
			t.Fatalf("expected copied attributes, got %+v", row)
		}
	}

	stored, _ := f.localizations.ListByPage(context.Background(), rootID)
	if len(stored) != 2 {
		t.Fatalf("expected rows to be persisted, got %d", len(stored))
	}
}

func TestPropagateChildUsesParentLanguagesOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	root := &Page{ID: uuid.New(), Type: domain.PageTypeRoot, Title: "Root", Alias: "root", Languages: []string{"de", "en", "bg"}}
	f.create(t, root, snapshot(false))

	parent := &Page{ID: uuid.New(), ParentID: ptr(root.ID), Title: "Products", Alias: "products"}
	if _, err := f.pages.Create(ctx, parent); err != nil {
		t.Fatalf("create parent: %v", err)
	}
	// parent localized into two languages only
	if err := f.localizations.CreateBatch(ctx, []*PageLocalization{
		{PageID: parent.ID, Language: "bg", Alias: "produkti", Sorting: 128},
		{PageID: parent.ID, Language: "de", Alias: "produkte", Sorting: 256},
	}); err != nil {
		t.Fatalf("seed parent localizations: %v", err)
	}

	child := &Page{ID: uuid.New(), ParentID: ptr(parent.ID), Title: "Chairs", Alias: "chairs"}
	rows := f.create(t, child, snapshot(false))

	if len(rows) != 2 || rows[0].Language != "bg" || rows[1].Language != "de" {
		t.Fatalf("expected [bg de], got %+v", rows)
	}
	suffix := "-" + parent.ID.String() + child.ID.String()
	for _, row := range rows {
		if !strings.HasSuffix(row.Alias, suffix) {
			t.Fatalf("expected alias suffix %q, got %q", suffix, row.Alias)
		}
		if row.Alias != "chairs"+suffix {
			t.Fatalf("expected no folder prefix outside folder mode, got %q", row.Alias)
		}
	}
}

func TestPropagateFolderModePrefixesNonRootParentAlias(t *testing.T) {
	f := newFixture()
	snap := snapshot(true)
	root := &Page{ID: uuid.New(), Type: domain.PageTypeRoot, Title: "Root", Alias: "root", Languages: []string{"en", "de"}}
	f.create(t, root, snap)

	about := &Page{ID: uuid.New(), ParentID: ptr(root.ID), Title: "About", Alias: "about"}
	aboutRows := f.create(t, about, snap)
	wantAbout := "about-" + root.ID.String() + about.ID.String()
	if aboutRows[0].Alias != wantAbout {
		t.Fatalf("expected root parent to add no prefix, got %q", aboutRows[0].Alias)
	}

	team := &Page{ID: uuid.New(), ParentID: ptr(about.ID), Title: "Team", Alias: "about/team"}
	teamRows := f.create(t, team, snap)
	want := wantAbout + "/team-" + about.ID.String() + team.ID.String()
	for _, row := range teamRows {
		if row.Alias != want {
			t.Fatalf("expected %q, got %q", want, row.Alias)
		}
	}
}

func TestPropagateFallsBackToSlugifiedTitle(t *testing.T) {
	f := newFixture()
	root := &Page{ID: uuid.New(), Type: domain.PageTypeRoot, Title: "Welcome Home", Languages: []string{"en"}}
	rows := f.create(t, root, snapshot(false))
	if !strings.HasPrefix(rows[0].Alias, "welcome-home-0") {
		t.Fatalf("expected slug fallback, got %q", rows[0].Alias)
	}
}

func TestPropagateSkipsExistingPages(t *testing.T) {
	f := newFixture()
	root := &Page{ID: uuid.New(), Type: domain.PageTypeRoot, Title: "Root", Languages: []string{"en"}}
	res, err := f.propagator.Propagate(context.Background(), PropagateRequest{Page: root, IsNew: false})
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if !res.Skipped || len(res.Localizations) != 0 {
		t.Fatalf("expected skip, got %+v", res)
	}
}

type missingParentRepo struct {
	*MemoryLocalizationRepository
}

func (missingParentRepo) GetByPageAndLanguage(_ context.Context, pageID uuid.UUID, language string) (*PageLocalization, error) {
	return nil, &domain.NotFoundError{Resource: "page_localization", Key: pageID.String() + "/" + language}
}

func TestPropagateFolderModeMissingParentLocalization(t *testing.T) {
	ctx := context.Background()
	locs := NewMemoryLocalizationRepository()
	parentID := uuid.New()
	if err := locs.CreateBatch(ctx, []*PageLocalization{{PageID: parentID, Language: "en", Alias: "parent", Sorting: 128}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	propagator := NewPropagator(missingParentRepo{locs})

	page := &Page{ID: uuid.New(), ParentID: ptr(parentID), Title: "Child", Alias: "child"}
	_, err := propagator.Propagate(ctx, PropagateRequest{Page: page, IsNew: true, Snapshot: snapshot(true)})
	if domain.KindOf(err) != domain.KindMissingParentLocalization {
		t.Fatalf("expected missing_parent_localization, got %v", err)
	}
	rows, _ := locs.ListByPage(ctx, page.ID)
	if len(rows) != 0 {
		t.Fatalf("expected no rows to be written, got %d", len(rows))
	}
}

func TestPropagateStorageFailureWritesNothing(t *testing.T) {
	f := newFixture()
	boom := errors.New("disk full")
	f.localizations.FailNext(boom)

	root := &Page{ID: uuid.New(), Type: domain.PageTypeRoot, Title: "Root", Languages: []string{"en", "de"}}
	_, err := f.propagator.Propagate(context.Background(), PropagateRequest{Page: root, IsNew: true})
	if domain.KindOf(err) != domain.KindRuntimeSave || !errors.Is(err, boom) {
		t.Fatalf("expected runtime_save wrapping cause, got %v", err)
	}
	rows, _ := f.localizations.ListByPage(context.Background(), root.ID)
	if len(rows) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(rows))
	}
}

func buildTree(t *testing.T, repo *MemoryPageRepository, rootLang string, childLangs ...string) (*Page, []*Page) {
	t.Helper()
	ctx := context.Background()
	root, err := repo.Create(ctx, &Page{Type: domain.PageTypeRoot, Title: "Root", Language: rootLang})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	children := []*Page{}
	for i, lang := range childLangs {
		child, err := repo.Create(ctx, &Page{ParentID: ptr(root.ID), Title: "Child", Language: lang, Sorting: i})
		if err != nil {
			t.Fatalf("create child: %v", err)
		}
		children = append(children, child)
	}
	return root, children
}

func TestSyncCascadesRootLanguage(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPageRepository()
	root, children := buildTree(t, repo, "de", "en", "en")
	grandchild, _ := repo.Create(ctx, &Page{ParentID: ptr(children[0].ID), Title: "Grandchild", Language: "en"})

	res, err := NewSynchronizer(repo).Sync(ctx, root)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if res.Updated != 3 {
		t.Fatalf("expected 3 updated pages, got %+v", res)
	}
	for _, id := range []uuid.UUID{children[0].ID, children[1].ID, grandchild.ID} {
		page, _ := repo.GetByID(ctx, id)
		if page.Language != "de" {
			t.Fatalf("expected de on %s, got %q", id, page.Language)
		}
	}
}

func TestSyncNoopWhenChildMatches(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPageRepository()
	root, children := buildTree(t, repo, "de", "en", "de")

	res, err := NewSynchronizer(repo).Sync(ctx, root)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !res.Unchanged || res.Updated != 0 {
		t.Fatalf("expected unchanged, got %+v", res)
	}
	page, _ := repo.GetByID(ctx, children[0].ID)
	if page.Language != "en" {
		t.Fatalf("expected child language untouched, got %q", page.Language)
	}
}

func TestSyncSkipsRegularPages(t *testing.T) {
	res, err := NewSynchronizer(NewMemoryPageRepository()).Sync(context.Background(), &Page{ID: uuid.New(), Type: domain.PageTypeRegular})
	if err != nil || !res.Skipped {
		t.Fatalf("expected skip, got %+v, %v", res, err)
	}
}

func TestCleanerDeletesSubtreeOnly(t *testing.T) {
	ctx := context.Background()
	pages := NewMemoryPageRepository()
	locs := NewMemoryLocalizationRepository()

	root, children := buildTree(t, pages, "en", "en")
	grandchild, _ := pages.Create(ctx, &Page{ParentID: ptr(children[0].ID), Title: "G"})
	other, _ := pages.Create(ctx, &Page{Type: domain.PageTypeRoot, Title: "Other"})

	for _, id := range []uuid.UUID{root.ID, children[0].ID, grandchild.ID, other.ID} {
		if err := locs.CreateBatch(ctx, []*PageLocalization{
			{PageID: id, Language: "en", Sorting: 128},
			{PageID: id, Language: "de", Sorting: 256},
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	deleted, err := NewCleaner(pages, locs).DeleteForPage(ctx, root.ID)
	if err != nil {
		t.Fatalf("DeleteForPage: %v", err)
	}
	if deleted != 6 {
		t.Fatalf("expected 6 deleted rows, got %d", deleted)
	}
	remaining, _ := locs.ListByPage(ctx, other.ID)
	if len(remaining) != 2 {
		t.Fatalf("expected unrelated rows to survive, got %d", len(remaining))
	}
}

func TestAdvisorDefaultLanguage(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPageRepository()
	_, children := buildTree(t, repo, "bg", "en")
	grandchild, _ := repo.Create(ctx, &Page{ParentID: ptr(children[0].ID), Title: "G"})

	advisor := NewAdvisor(repo)
	lang, err := advisor.DefaultLanguage(ctx, ptr(grandchild.ID))
	if err != nil || lang != "bg" {
		t.Fatalf("expected bg, got %q, %v", lang, err)
	}
	lang, err = advisor.DefaultLanguage(ctx, nil)
	if err != nil || lang != "" {
		t.Fatalf("expected empty language for nil parent, got %q, %v", lang, err)
	}
	lang, err = advisor.DefaultLanguage(ctx, ptr(uuid.New()))
	if err != nil || lang != "" {
		t.Fatalf("expected empty language for unknown parent, got %q, %v", lang, err)
	}
}

func TestAdvisorCheckRootDomains(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPageRepository()
	advisor := NewAdvisor(repo)

	first, _ := repo.Create(ctx, &Page{Type: domain.PageTypeRoot, Title: "A", DNS: "example.com", Sorting: 1})
	notices, err := advisor.CheckRootDomains(ctx)
	if err != nil || len(notices) != 0 {
		t.Fatalf("expected no notices for single root, got %v, %v", notices, err)
	}
	if requires, _ := advisor.RequiresDNS(ctx); requires {
		t.Fatalf("single root does not require dns")
	}

	second, _ := repo.Create(ctx, &Page{Type: domain.PageTypeRoot, Title: "B", DNS: "Example.com", Sorting: 2})
	third, _ := repo.Create(ctx, &Page{Type: domain.PageTypeRoot, Title: "C", Sorting: 3})

	notices, err = advisor.CheckRootDomains(ctx)
	if err != nil {
		t.Fatalf("CheckRootDomains: %v", err)
	}
	if len(notices) != 3 {
		t.Fatalf("expected 3 notices, got %+v", notices)
	}
	if notices[0].Code != NoticeMissingDNS || notices[0].PageID != third.ID {
		t.Fatalf("expected missing dns for C first, got %+v", notices[0])
	}
	if notices[1].PageID != first.ID || notices[2].PageID != second.ID || notices[1].Code != NoticeDuplicatedDNS {
		t.Fatalf("expected duplicated dns for A and B, got %+v", notices[1:])
	}
	if requires, _ := advisor.RequiresDNS(ctx); !requires {
		t.Fatalf("multiple roots require dns")
	}
}

func TestRegionCodesKeepTheirSpelling(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPageRepository()
	root, children := buildTree(t, repo, "de-CH", "en")

	if _, err := NewSynchronizer(repo).Sync(ctx, root); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	child, _ := repo.GetByID(ctx, children[0].ID)
	if child.Language != "de-CH" {
		t.Fatalf("expected child recoded to de-CH, got %q", child.Language)
	}
	if res, _ := NewSynchronizer(repo).Sync(ctx, &Page{ID: root.ID, Type: domain.PageTypeRoot, Language: "DE-ch"}); !res.Unchanged {
		t.Fatalf("expected case-insensitive match to leave the subtree alone, got %+v", res)
	}

	f := newFixture()
	rootID := uuid.New()
	rows := f.create(t, &Page{
		ID:        rootID,
		Type:      domain.PageTypeRoot,
		Title:     "Home",
		Languages: []string{" de-CH", "pt-BR", "de-ch"},
	}, snapshot(false))
	if len(rows) != 2 || rows[0].Language != "de-CH" || rows[1].Language != "pt-BR" {
		t.Fatalf("expected root list spelling kept, got %+v", rows)
	}
	childRows := f.create(t, &Page{ParentID: ptr(rootID), Title: "About"}, snapshot(false))
	if len(childRows) != 2 || childRows[0].Language != "de-CH" {
		t.Fatalf("expected child rows to follow the root list, got %+v", childRows)
	}
	if _, err := f.localizations.GetByPageAndLanguage(ctx, rootID, "DE-CH"); err != nil {
		t.Fatalf("expected case-insensitive lookup, got %v", err)
	}
}
