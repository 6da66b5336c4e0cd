package domain

import "strings"

// PageType distinguishes subtree roots from regular pages.
type PageType string

const (
	// PageTypeRoot marks the top of a site subtree. Roots own the language
	// list and the DNS binding.
	PageTypeRoot PageType = "root"
	// PageTypeRegular is any page below a root.
	PageTypeRegular PageType = "regular"
)

// NormalizePageType lowercases input and falls back to PageTypeRegular.
func NormalizePageType(input string) PageType {
	if PageType(strings.ToLower(strings.TrimSpace(input))) == PageTypeRoot {
		return PageTypeRoot
	}
	return PageTypeRegular
}

// IsRoot reports whether t is the root type.
func (t PageType) IsRoot() bool {
	return t == PageTypeRoot
}

// NormalizeLanguage trims and lowercases a language code.
func NormalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// SameLanguage compares two codes ignoring case and surrounding spaces.
func SameLanguage(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// DistinctLanguages trims codes, drops blanks, and removes case-insensitive
// duplicates. The first spelling of each code is kept as given, so region
// codes such as "de-CH" stay intact.
func DistinctLanguages(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// UniqueLanguages normalizes codes, drops blanks, and removes duplicates while
// keeping first-seen order.
func UniqueLanguages(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		normalized := NormalizeLanguage(code)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
