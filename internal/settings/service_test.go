package settings

import (
	"context"
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/languages"
	"github.com/goliatone/go-cms-l10n/internal/pages"
	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
)

func newService(t *testing.T, cfg runtimeconfig.Config, opts ...ServiceOption) (*Service, *MemoryRepository) {
	t.Helper()
	catalog := languages.NewMemoryRepository()
	if _, err := languages.Seed(context.Background(), catalog); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	repo := NewMemoryRepository()
	return NewService(repo, catalog, cfg, opts...), repo
}

func fieldError(t *testing.T, err error, field string) error {
	t.Helper()
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors in chain, got %T %v", err, err)
	}
	fieldErr, ok := errs[field]
	if !ok {
		t.Fatalf("expected error on %s, got %v", field, errs)
	}
	return fieldErr
}

func TestSaveDeduplicatesAndPersists(t *testing.T) {
	svc, repo := newService(t, runtimeconfig.DefaultConfig())
	ctx := context.Background()

	stored, err := svc.Save(ctx, Input{Languages: []string{"de", "EN", "de"}, DefaultLanguage: "en", FolderURL: true})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(stored.Languages) != 2 || stored.Languages[0] != "de" || stored.Languages[1] != "en" {
		t.Fatalf("expected [de en], got %v", stored.Languages)
	}
	persisted, _ := repo.Get(ctx)
	if !persisted.FolderURL || persisted.DefaultLanguage != "en" {
		t.Fatalf("unexpected persisted settings %+v", persisted)
	}

	snap := svc.Current()
	if !snap.FolderURL() || snap.DefaultLanguage() != "en" || !snap.HasLanguage("de") {
		t.Fatalf("expected state to follow save, got %+v", snap)
	}
}

func TestSaveRejectsUnknownLanguage(t *testing.T) {
	svc, repo := newService(t, runtimeconfig.DefaultConfig())
	_, err := svc.Save(context.Background(), Input{Languages: []string{"en", "xx"}, DefaultLanguage: "en"})

	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ve validation.Error
	if !errors.As(fieldError(t, err, FieldLanguages), &ve) || ve.Code() != "l10n_unknown_language" {
		t.Fatalf("expected l10n_unknown_language, got %v", err)
	}
	if _, getErr := repo.Get(context.Background()); !errors.Is(getErr, ErrSettingsNotFound) {
		t.Fatalf("expected nothing stored, got %v", getErr)
	}
}

func TestSaveRequiresDefaultLanguage(t *testing.T) {
	svc, _ := newService(t, runtimeconfig.DefaultConfig())
	_, err := svc.Save(context.Background(), Input{Languages: []string{"de"}, DefaultLanguage: "en"})
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	fieldError(t, err, FieldLanguages)
}

func TestSaveDerivesDefaultFromFirstRoot(t *testing.T) {
	ctx := context.Background()
	roots := pages.NewMemoryPageRepository()
	if _, err := roots.Create(ctx, &pages.Page{Type: domain.PageTypeRoot, Title: "B", Language: "bg", Sorting: 2}); err != nil {
		t.Fatalf("create root: %v", err)
	}
	if _, err := roots.Create(ctx, &pages.Page{Type: domain.PageTypeRoot, Title: "A", Language: "de", Sorting: 1}); err != nil {
		t.Fatalf("create root: %v", err)
	}

	svc, _ := newService(t, runtimeconfig.DefaultConfig(), WithRootLister(roots))
	stored, err := svc.Save(ctx, Input{Languages: []string{"de", "bg"}})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if stored.DefaultLanguage != "de" {
		t.Fatalf("expected default from first root, got %q", stored.DefaultLanguage)
	}
}

func TestSaveURLFlagsAreMutuallyExclusive(t *testing.T) {
	svc, _ := newService(t, runtimeconfig.DefaultConfig())
	_, err := svc.Save(context.Background(), Input{Languages: []string{"en"}, DefaultLanguage: "en", AliasSuffix: true, AddLanguageToURL: true})
	if domain.KindOf(err) != domain.KindMutualExclusion {
		t.Fatalf("expected mutual_exclusion, got %v", err)
	}
	fieldError(t, err, FieldAliasSuffix)
}

func TestSaveRejectsFlagsWhileHostAddsLanguage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.HostAddLanguageToURL = true
	svc, _ := newService(t, cfg)

	_, err := svc.Save(context.Background(), Input{Languages: []string{"en"}, DefaultLanguage: "en", AddLanguageToURL: true})
	if domain.KindOf(err) != domain.KindMutualExclusion {
		t.Fatalf("expected mutual_exclusion, got %v", err)
	}
	fieldError(t, err, FieldAddLanguageToURL)

	stored, err := svc.Save(context.Background(), Input{Languages: []string{"en"}, DefaultLanguage: "en"})
	if err != nil {
		t.Fatalf("Save without flags: %v", err)
	}
	if !stored.HostAddLanguageToURL {
		t.Fatalf("expected host flag to be mirrored")
	}
}

func TestSnapshotFallsBackToConfig(t *testing.T) {
	svc, _ := newService(t, runtimeconfig.DefaultConfig())
	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.DefaultLanguage() != "en" || len(snap.Languages()) != 3 {
		t.Fatalf("expected config defaults, got %v", snap.Languages())
	}
}

func TestLanguageOptionsAreSorted(t *testing.T) {
	svc, _ := newService(t, runtimeconfig.DefaultConfig())
	options, err := svc.LanguageOptions(context.Background())
	if err != nil {
		t.Fatalf("LanguageOptions: %v", err)
	}
	if len(options) == 0 || options[0].Label != "Arabic (العربية)" {
		t.Fatalf("expected options sorted by label, got %v", options)
	}
}
