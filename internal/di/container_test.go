package di_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-cms-l10n/internal/di"
	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/forms"
	"github.com/goliatone/go-cms-l10n/internal/hooks"
	"github.com/goliatone/go-cms-l10n/internal/i18n"
	"github.com/goliatone/go-cms-l10n/internal/messages"
	"github.com/goliatone/go-cms-l10n/internal/pages"
	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
	"github.com/goliatone/go-cms-l10n/internal/translations"
	"github.com/google/uuid"
)

var (
	rootID  = uuid.MustParse("00000000-0000-0000-0000-00000000a001")
	childID = uuid.MustParse("00000000-0000-0000-0000-00000000a002")
	otherID = uuid.MustParse("00000000-0000-0000-0000-00000000a003")
)

func newContainer(t *testing.T, mutate func(*runtimeconfig.Config), opts ...di.Option) *di.Container {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })
	return container
}

func submitPage(t *testing.T, c *di.Container, page *pages.Page) *pages.Page {
	t.Helper()
	ctx := context.Background()
	stored, err := c.PageRepository().Create(ctx, page)
	if err != nil {
		t.Fatalf("create page %s: %v", page.Title, err)
	}
	if err := c.Hooks().DispatchPageSubmit(ctx, &hooks.PageSubmit{Page: stored, IsNew: true}); err != nil {
		t.Fatalf("submit page %s: %v", page.Title, err)
	}
	return stored
}

func seedTree(t *testing.T, c *di.Container) {
	t.Helper()
	submitPage(t, c, &pages.Page{
		ID:        rootID,
		Type:      domain.PageTypeRoot,
		Title:     "Website",
		Language:  "en",
		Languages: []string{"en", "de"},
	})
	submitPage(t, c, &pages.Page{
		ID:       childID,
		ParentID: &rootID,
		Type:     domain.PageTypeRegular,
		Title:    "About us",
		Language: "fr",
	})
}

func languagesOf(t *testing.T, c *di.Container, pageID uuid.UUID) []string {
	t.Helper()
	rows, err := c.LocalizationRepository().ListByPage(context.Background(), pageID)
	if err != nil {
		t.Fatalf("list localizations: %v", err)
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Language)
	}
	return out
}

func TestContainerSubmitPropagatesAndSyncs(t *testing.T) {
	for _, commands := range []bool{true, false} {
		c := newContainer(t, func(cfg *runtimeconfig.Config) { cfg.Features.Commands = commands })
		seedTree(t, c)

		if got := strings.Join(languagesOf(t, c, rootID), ","); got != "en,de" {
			t.Fatalf("commands=%v: expected root localizations en,de, got %s", commands, got)
		}
		if got := strings.Join(languagesOf(t, c, childID), ","); got != "en,de" {
			t.Fatalf("commands=%v: expected child localizations en,de, got %s", commands, got)
		}

		ctx := context.Background()
		root, err := c.PageRepository().GetByID(ctx, rootID)
		if err != nil {
			t.Fatalf("get root: %v", err)
		}
		root.Language = "de"
		if _, err := c.PageRepository().Update(ctx, root); err != nil {
			t.Fatalf("update root: %v", err)
		}
		if err := c.Hooks().DispatchPageSubmit(ctx, &hooks.PageSubmit{Page: root}); err != nil {
			t.Fatalf("resubmit root: %v", err)
		}
		child, err := c.PageRepository().GetByID(ctx, childID)
		if err != nil {
			t.Fatalf("get child: %v", err)
		}
		if child.Language != "de" {
			t.Fatalf("commands=%v: expected child language de after sync, got %q", commands, child.Language)
		}
		if got := len(languagesOf(t, c, rootID)); got != 2 {
			t.Fatalf("commands=%v: resubmit must not create rows, got %d", commands, got)
		}
	}
}

func TestContainerDeleteRemovesSubtreeLocalizations(t *testing.T) {
	c := newContainer(t, nil)
	seedTree(t, c)

	if err := c.Hooks().DispatchPageDelete(context.Background(), &hooks.PageDelete{PageID: rootID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := languagesOf(t, c, rootID); len(got) != 0 {
		t.Fatalf("expected root localizations removed, got %v", got)
	}
	if got := languagesOf(t, c, childID); len(got) != 0 {
		t.Fatalf("expected child localizations removed, got %v", got)
	}
}

func TestContainerLoadFillsDefaultsAndQueuesNotices(t *testing.T) {
	c := newContainer(t, nil)
	seedTree(t, c)
	submitPage(t, c, &pages.Page{
		ID:        otherID,
		Type:      domain.PageTypeRoot,
		Title:     "Shop",
		Language:  "bg",
		Languages: []string{"bg"},
	})

	evt := &hooks.PageLoad{PageID: uuid.New(), ParentID: &otherID, IsNew: true}
	if err := c.Hooks().DispatchPageLoad(context.Background(), evt); err != nil {
		t.Fatalf("load: %v", err)
	}
	if evt.DefaultLanguage != "bg" {
		t.Fatalf("expected default language bg, got %q", evt.DefaultLanguage)
	}
	if !evt.RequiresDNS {
		t.Fatalf("expected dns to be required with two roots")
	}
	if len(evt.Notices) != 2 {
		t.Fatalf("expected two missing dns notices, got %#v", evt.Notices)
	}

	queued := c.Messages().Drain()
	if len(queued) != 2 {
		t.Fatalf("expected two queued messages, got %#v", queued)
	}
	for _, msg := range queued {
		if msg.Level != messages.LevelInfo || !strings.Contains(msg.Text, "has no domain") {
			t.Fatalf("unexpected message %#v", msg)
		}
	}
}

func TestContainerLoadWithoutParentUsesConfiguredDefault(t *testing.T) {
	c := newContainer(t, nil)

	evt := &hooks.PageLoad{PageID: uuid.New(), IsNew: true}
	if err := c.Hooks().DispatchPageLoad(context.Background(), evt); err != nil {
		t.Fatalf("load: %v", err)
	}
	if evt.DefaultLanguage != "en" {
		t.Fatalf("expected configured default en, got %q", evt.DefaultLanguage)
	}
	if evt.RequiresDNS {
		t.Fatalf("dns must not be required without roots")
	}
}

func TestContainerRejectsInvalidFieldDefinition(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	_, err := di.NewContainer(cfg, di.WithFieldDefinitions(translations.FieldDefinition{
		Field:  "headline",
		Widget: forms.Definition{InputType: forms.InputText},
	}))
	if err == nil {
		t.Fatalf("expected error for field without table")
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.AliasSuffix = true
	cfg.AddLanguageToURL = true
	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatalf("expected config validation error")
	}
}

func TestContainerSQLiteStorage(t *testing.T) {
	c := newContainer(t, func(cfg *runtimeconfig.Config) {
		cfg.Storage.Provider = "sqlite"
		cfg.Storage.DSN = "file:di_container_sqlite?mode=memory&cache=shared"
	}, di.WithFieldDefinitions(translations.FieldDefinition{
		Table:       "tl_news",
		Field:       "headline",
		StorageType: "varchar(255)",
		Widget:      forms.Definition{InputType: forms.InputText, Label: "Headline"},
	}))
	if c.DB() == nil {
		t.Fatalf("expected sqlite handle")
	}

	ctx := context.Background()
	if _, err := c.LanguageRepository().GetByCode(ctx, "de"); err != nil {
		t.Fatalf("expected seeded catalog, got %v", err)
	}
	seedTree(t, c)
	if got := strings.Join(languagesOf(t, c, childID), ","); got != "en,de" {
		t.Fatalf("expected child localizations en,de, got %s", got)
	}

	snap, err := c.SettingsService().Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	res, err := c.Translator().RenderOrApply(ctx, translations.Request{
		Key:        "abc",
		Table:      "tl_news",
		Field:      "headline",
		ParentID:   "7",
		RequestURI: "/admin/l10n/translator?key=abc",
		Snapshot:   snap,
	})
	if err != nil {
		t.Fatalf("render translator: %v", err)
	}
	if len(res.Form.Widgets) != len(snap.Languages()) {
		t.Fatalf("expected one widget per language, got %d", len(res.Form.Widgets))
	}
}

func TestContainerRegistersAdminRoutes(t *testing.T) {
	c := newContainer(t, nil)
	mux := http.NewServeMux()
	if err := c.AdminAPI().Register(mux); err != nil {
		t.Fatalf("register: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/l10n/languages", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"de"`) {
		t.Fatalf("expected catalog in response, got %s", rec.Body.String())
	}
}

func TestContainerLabelsFollowContextLocale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")
	if err := os.WriteFile(path, []byte(`{"labels":{"fr":{"MSC.apply":"Appliquer"}}}`), 0o600); err != nil {
		t.Fatalf("write labels: %v", err)
	}
	c := newContainer(t, nil, di.WithLabelFile(path))
	ctx := context.Background()

	if got := c.Labels().Label(i18n.WithLocale(ctx, "de"), "MSC.apply"); got != "Übernehmen" {
		t.Fatalf("expected german label, got %q", got)
	}
	if got := c.Labels().Label(i18n.WithLocale(ctx, "fr"), "MSC.apply"); got != "Appliquer" {
		t.Fatalf("expected host label, got %q", got)
	}
	if got := c.Labels().Label(ctx, "MSC.apply"); got != "Apply" {
		t.Fatalf("expected english default, got %q", got)
	}

	if _, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithLabelFile(filepath.Join(t.TempDir(), "missing.json"))); err == nil {
		t.Fatalf("expected error for missing label file")
	}
}
