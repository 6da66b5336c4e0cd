package translations

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/forms"
	"github.com/goliatone/go-cms-l10n/internal/validation"
)

var (
	ErrFieldTableRequired = errors.New("translations: field table is required")
	ErrFieldNameRequired  = errors.New("translations: field name is required")
	ErrFieldRegistered    = errors.New("translations: field already registered")
)

// FieldDefinition declares a translatable field of a host table: the SQL
// type it is stored as in the host table and the widget used to edit it.
type FieldDefinition struct {
	Table       string           `json:"table"`
	Field       string           `json:"field"`
	StorageType string           `json:"storage_type"`
	Widget      forms.Definition `json:"widget"`
	// Schema optionally constrains structured values (JSON schema or the
	// {"fields": [...]} shorthand).
	Schema map[string]any `json:"schema,omitempty"`
}

// Field is a registered definition with its slot resolved.
type Field struct {
	Definition FieldDefinition
	Slot       Slot
	schema     *validation.Schema
}

// Widget returns the widget definition with the slot specific rules added.
func (f *Field) Widget() forms.Definition {
	def := f.Definition.Widget
	def.Rules = append([]ozzo.Rule(nil), def.Rules...)
	if f.Slot == SlotStructured {
		schema := f.schema
		def.Rules = append(def.Rules, ozzo.By(func(value any) error {
			raw, _ := value.(string)
			if strings.TrimSpace(raw) == "" {
				return nil
			}
			if err := schema.ValidateJSON([]byte(raw)); err != nil {
				return ozzo.NewError("l10n_structured_invalid", err.Error())
			}
			return nil
		}))
	}
	return def
}

// Registry holds the translatable fields known to the translator.
type Registry struct {
	mu     sync.RWMutex
	fields map[string]*Field
}

func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]*Field)}
}

func registryKey(table, field string) string {
	return strings.TrimSpace(table) + "." + strings.TrimSpace(field)
}

// Register validates def, resolves its slot and compiles its schema.
func (r *Registry) Register(def FieldDefinition) error {
	def.Table = strings.TrimSpace(def.Table)
	def.Field = strings.TrimSpace(def.Field)
	switch {
	case def.Table == "":
		return ErrFieldTableRequired
	case def.Field == "":
		return ErrFieldNameRequired
	}
	if def.Widget.InputType == "" {
		def.Widget.InputType = forms.InputText
	}
	if err := def.Widget.Validate(); err != nil {
		return &domain.Error{Kind: domain.KindValidation, Op: "translations.register", Field: def.Field, Message: "invalid widget definition", Err: err}
	}
	field := &Field{Definition: def, Slot: ResolveSlot(def.StorageType)}
	if field.Slot == SlotStructured {
		schema, err := validation.Compile(def.Schema)
		if err != nil {
			return &domain.Error{Kind: domain.KindValidation, Op: "translations.register", Field: def.Field, Message: "invalid field schema", Err: err}
		}
		field.schema = schema
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := registryKey(def.Table, def.Field)
	if _, exists := r.fields[key]; exists {
		return fmt.Errorf("%w: %s", ErrFieldRegistered, key)
	}
	r.fields[key] = field
	return nil
}

// MustRegister panics when Register fails. Used for static field tables.
func (r *Registry) MustRegister(defs ...FieldDefinition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

func (r *Registry) Lookup(table, field string) (*Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := registryKey(table, field)
	registered, ok := r.fields[key]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "translatable_field", Key: key}
	}
	return registered, nil
}

// Fields lists registered definitions ordered by table and field.
func (r *Registry) Fields() []FieldDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FieldDefinition, 0, len(r.fields))
	for _, field := range r.fields {
		out = append(out, field.Definition)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Table != out[j].Table {
			return out[i].Table < out[j].Table
		}
		return out[i].Field < out[j].Field
	})
	return out
}
