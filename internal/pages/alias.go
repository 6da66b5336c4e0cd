package pages

import (
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// baseAlias returns the alias a localization alias is derived from. An empty
// page alias falls back to the slugified title. In folder-URL mode only the
// last path segment is kept.
func baseAlias(page *Page, folderURL bool) string {
	alias := strings.TrimSpace(page.Alias)
	if alias == "" {
		if normalized, err := slug.Normalize(page.Title); err == nil {
			alias = normalized
		}
	}
	if folderURL {
		if idx := strings.LastIndex(alias, "/"); idx >= 0 {
			alias = alias[idx+1:]
		}
	}
	return alias
}

// aliasSuffix is "-" + parent key + page key. Pages without a parent use "0"
// as parent key.
func aliasSuffix(page *Page) string {
	return "-" + parentKey(page.ParentID) + page.ID.String()
}

func parentKey(parentID *uuid.UUID) string {
	if parentID == nil || *parentID == uuid.Nil {
		return "0"
	}
	return parentID.String()
}

// LocalizedAlias composes the alias of a localization row. parentAlias is the
// alias of the parent's localization in the same language; it is prefixed
// only when non-empty.
func LocalizedAlias(page *Page, folderURL bool, parentAlias string) string {
	alias := baseAlias(page, folderURL)
	if parentAlias != "" {
		alias = parentAlias + "/" + alias
	}
	return alias + aliasSuffix(page)
}
