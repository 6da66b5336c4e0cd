package languages

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/identity"
)

var builtin = []struct {
	Code       string
	Name       string
	NativeName string
	Direction  string
}{
	{"en", "English", "English", "ltr"},
	{"de", "German", "Deutsch", "ltr"},
	{"bg", "Bulgarian", "Български", "ltr"},
	{"fr", "French", "Français", "ltr"},
	{"es", "Spanish", "Español", "ltr"},
	{"it", "Italian", "Italiano", "ltr"},
	{"pt", "Portuguese", "Português", "ltr"},
	{"nl", "Dutch", "Nederlands", "ltr"},
	{"pl", "Polish", "Polski", "ltr"},
	{"cs", "Czech", "Čeština", "ltr"},
	{"ru", "Russian", "Русский", "ltr"},
	{"uk", "Ukrainian", "Українська", "ltr"},
	{"sv", "Swedish", "Svenska", "ltr"},
	{"da", "Danish", "Dansk", "ltr"},
	{"fi", "Finnish", "Suomi", "ltr"},
	{"el", "Greek", "Ελληνικά", "ltr"},
	{"tr", "Turkish", "Türkçe", "ltr"},
	{"zh", "Chinese", "中文", "ltr"},
	{"ja", "Japanese", "日本語", "ltr"},
	{"ko", "Korean", "한국어", "ltr"},
	{"ar", "Arabic", "العربية", "rtl"},
	{"he", "Hebrew", "עברית", "rtl"},
}

// Builtin returns the default catalog with deterministic ids.
func Builtin() []*Language {
	out := make([]*Language, 0, len(builtin))
	for _, entry := range builtin {
		out = append(out, &Language{
			ID:         identity.LanguageUUID(entry.Code),
			Code:       entry.Code,
			Name:       entry.Name,
			NativeName: entry.NativeName,
			Direction:  entry.Direction,
		})
	}
	return out
}

// Seed inserts every builtin language the repository does not know yet and
// returns how many were added.
func Seed(ctx context.Context, repo Repository) (int, error) {
	added := 0
	for _, lang := range Builtin() {
		_, err := repo.GetByCode(ctx, lang.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrLanguageNotFound) {
			return added, err
		}
		if _, err := repo.Create(ctx, lang); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// Filter splits codes into known and unknown catalog entries. Codes are
// normalized and de-duplicated; order is preserved.
func Filter(ctx context.Context, repo Repository, codes []string) (known, unknown []string, err error) {
	for _, code := range domain.UniqueLanguages(codes) {
		_, lookupErr := repo.GetByCode(ctx, code)
		switch {
		case lookupErr == nil:
			known = append(known, code)
		case errors.Is(lookupErr, ErrLanguageNotFound):
			unknown = append(unknown, code)
		default:
			return nil, nil, lookupErr
		}
	}
	return known, unknown, nil
}

func label(lang *Language) string {
	if lang.NativeName == "" || strings.EqualFold(lang.NativeName, lang.Name) {
		return lang.Name
	}
	return lang.Name + " (" + lang.NativeName + ")"
}
