package languages

import (
	"context"
	"sort"
	"strings"
)

// Options returns the catalog as select options sorted by label.
func Options(ctx context.Context, repo Repository) ([]Option, error) {
	records, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Option, 0, len(records))
	for _, lang := range records {
		out = append(out, Option{Value: lang.Code, Label: label(lang)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Label) < strings.ToLower(out[j].Label)
	})
	return out, nil
}
