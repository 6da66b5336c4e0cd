package i18n

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Fixture is a serialised set of label bundles keyed by locale.
type Fixture struct {
	DefaultLocale string                       `json:"default_locale"`
	Labels        map[string]map[string]string `json:"labels"`
}

//go:embed bundles/labels.json
var bundledLabels embed.FS

// DefaultFixture loads the built-in label bundles.
func DefaultFixture() (*Fixture, error) {
	data, err := bundledLabels.ReadFile("bundles/labels.json")
	if err != nil {
		return nil, fmt.Errorf("i18n: read embedded labels: %w", err)
	}
	return decodeFixture(bytes.NewReader(data))
}

// Loader reads label fixtures from disk.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the configured fixture file.
func (l *Loader) Load(ctx context.Context) (*Fixture, error) {
	if l == nil || l.path == "" {
		return nil, errors.New("i18n: loader path cannot be empty")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("i18n: open fixture %q: %w", l.path, err)
	}
	defer file.Close()

	return decodeFixture(file)
}

func decodeFixture(r io.Reader) (*Fixture, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var fx Fixture
	if err := decoder.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("i18n: decode fixture: %w", err)
	}
	if fx.Labels == nil {
		fx.Labels = map[string]map[string]string{}
	}
	return &fx, nil
}
