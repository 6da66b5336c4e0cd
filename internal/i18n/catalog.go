package i18n

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
)

type localeKey struct{}

// WithLocale stores the backend user's locale on ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeKey{}, domain.NormalizeLanguage(locale))
}

// LocaleFromContext returns the locale stored by WithLocale, or "".
func LocaleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeKey{}).(string)
	return locale
}

// Catalog resolves labels in the locale carried by the context. Keys missing
// from that locale resolve through the default locale and then the fallback.
type Catalog struct {
	mu            sync.RWMutex
	defaultLocale string
	bundles       map[string]map[string]string
	fallback      interfaces.Labels
}

var _ interfaces.Labels = (*Catalog)(nil)

// NewCatalog builds a catalog over fallback, usually the English labels.
func NewCatalog(fallback interfaces.Labels) *Catalog {
	return &Catalog{
		bundles:  map[string]map[string]string{},
		fallback: fallback,
	}
}

// DefaultCatalog loads the embedded bundles over fallback.
func DefaultCatalog(fallback interfaces.Labels) (*Catalog, error) {
	fx, err := DefaultFixture()
	if err != nil {
		return nil, err
	}
	c := NewCatalog(fallback)
	c.Merge(fx)
	return c, nil
}

// Merge adds the bundles of fx. Later merges win per key.
func (c *Catalog) Merge(fx *Fixture) {
	if fx == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if locale := domain.NormalizeLanguage(fx.DefaultLocale); locale != "" {
		c.defaultLocale = locale
	}
	for locale, labels := range fx.Labels {
		code := domain.NormalizeLanguage(locale)
		bundle, ok := c.bundles[code]
		if !ok {
			bundle = make(map[string]string, len(labels))
			c.bundles[code] = bundle
		}
		for key, value := range labels {
			bundle[key] = value
		}
	}
}

// Locales lists the locales that carry at least one label.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.bundles))
	for locale := range c.bundles {
		out = append(out, locale)
	}
	slices.Sort(out)
	return out
}

func (c *Catalog) Label(ctx context.Context, key string, args ...any) string {
	if format, ok := c.lookup(LocaleFromContext(ctx), key); ok {
		if len(args) == 0 {
			return format
		}
		return fmt.Sprintf(format, args...)
	}
	if c.fallback != nil {
		return c.fallback.Label(ctx, key, args...)
	}
	if len(args) == 0 {
		return key
	}
	return fmt.Sprintf(key, args...)
}

func (c *Catalog) lookup(locale, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, code := range []string{locale, c.defaultLocale} {
		if code == "" {
			continue
		}
		if format, ok := c.bundles[code][key]; ok {
			return format, true
		}
	}
	return "", false
}
