package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from key using go-hashid. Keys should be
// prefixed by entity type so different entities never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// LanguageUUID is the catalog id for a language code.
func LanguageUUID(code string) uuid.UUID {
	return UUID("l10n:language:" + strings.ToLower(strings.TrimSpace(code)))
}

// SettingsUUID is the id of the single settings row.
func SettingsUUID() uuid.UUID {
	return UUID("l10n:settings:default")
}

// TranslationUUID derives the id of a generic translation row from its
// identifying tuple, so concurrent lazy creation converges on one id.
func TranslationUUID(table, field, parentID, language string) uuid.UUID {
	return UUID(strings.Join([]string{
		"l10n:translation",
		strings.TrimSpace(table),
		strings.TrimSpace(field),
		strings.TrimSpace(parentID),
		strings.ToLower(strings.TrimSpace(language)),
	}, ":"))
}
