package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOfUnwrapsChain(t *testing.T) {
	base := errors.New("disk full")
	err := fmt.Errorf("apply: %w", NewError(KindRuntimeSave, "translations.apply", "save failed", base))

	if got := KindOf(err); got != KindRuntimeSave {
		t.Fatalf("expected %s, got %q", KindRuntimeSave, got)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected underlying error to be reachable")
	}
	if !errors.Is(err, &Error{Kind: KindRuntimeSave}) {
		t.Fatalf("expected kind match through errors.Is")
	}
	if errors.Is(err, &Error{Kind: KindValidation}) {
		t.Fatalf("unexpected match for different kind")
	}
	if KindOf(base) != "" {
		t.Fatalf("plain errors carry no kind")
	}
}

func TestErrorMessageFormatting(t *testing.T) {
	err := FieldError(KindMutualExclusion, "settings.save", "alias_suffix", "cannot combine with add_language_to_url")
	if got := err.Error(); got != "settings.save: cannot combine with add_language_to_url" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestUniqueLanguages(t *testing.T) {
	got := UniqueLanguages([]string{"EN", "de", " en", "", "bg", "de"})
	want := []string{"en", "de", "bg"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizePageType(t *testing.T) {
	if NormalizePageType(" ROOT ") != PageTypeRoot {
		t.Fatalf("expected root")
	}
	if NormalizePageType("forward") != PageTypeRegular {
		t.Fatalf("expected regular fallback")
	}
}

func TestKindOfRecognisesNotFound(t *testing.T) {
	err := fmt.Errorf("load: %w", &NotFoundError{Resource: "page", Key: "42"})
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found, got %q", KindOf(err))
	}
	if err.Error() != `load: page "42" not found` {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestDistinctLanguagesKeepsSpelling(t *testing.T) {
	got := DistinctLanguages([]string{" de-CH", "en", "DE-ch", "", "pt-BR"})
	if strings.Join(got, ",") != "de-CH,en,pt-BR" {
		t.Fatalf("unexpected languages %v", got)
	}
	if !SameLanguage("de-CH ", "de-ch") || SameLanguage("de", "de-CH") {
		t.Fatalf("unexpected SameLanguage result")
	}
}
