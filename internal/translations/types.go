package translations

import (
	"strings"
	"time"

	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Translation is one language's value for one field of one record.
type Translation struct {
	bun.BaseModel `bun:"table:generic_translations,alias:gt"`

	ID            uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ParentTable   string    `bun:"parent_table,notnull,unique:generic_translation_key" json:"parent_table"`
	ParentID      string    `bun:"parent_id,notnull,unique:generic_translation_key" json:"parent_id"`
	Field         string    `bun:"field,notnull,unique:generic_translation_key" json:"field"`
	Language      string    `bun:"language,notnull,unique:generic_translation_key" json:"language"`
	ValueText     string    `bun:"value_text,notnull,default:''" json:"value_text,omitempty"`
	ValueTextarea string    `bun:"value_textarea,notnull,default:''" json:"value_textarea,omitempty"`
	ValueBinary   []byte    `bun:"value_binary" json:"value_binary,omitempty"`
	ValueBlob     []byte    `bun:"value_blob" json:"value_blob,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Key identifies a translation row.
type Key struct {
	Table    string
	Field    string
	ParentID string
	Language string
}

func (k Key) normalize() Key {
	return Key{
		Table:    strings.TrimSpace(k.Table),
		Field:    strings.TrimSpace(k.Field),
		ParentID: strings.TrimSpace(k.ParentID),
		Language: domain.NormalizeLanguage(k.Language),
	}
}

func (k Key) String() string {
	return k.Table + "." + k.Field + "#" + k.ParentID + "@" + k.Language
}

// Key returns the identifying tuple of the row.
func (t *Translation) Key() Key {
	return Key{Table: t.ParentTable, Field: t.Field, ParentID: t.ParentID, Language: t.Language}
}

// Value reads the slot column.
func (t *Translation) Value(slot Slot) Value {
	switch slot {
	case SlotLongText:
		return LongTextValue(t.ValueTextarea)
	case SlotBinary:
		return BinaryValue(t.ValueBinary)
	case SlotStructured:
		return StructuredValue(t.ValueBlob)
	default:
		return TextValue(t.ValueText)
	}
}

// SetValue writes v into its slot column; the other columns are untouched.
func (t *Translation) SetValue(v Value) {
	switch typed := v.(type) {
	case LongTextValue:
		t.ValueTextarea = string(typed)
	case BinaryValue:
		t.ValueBinary = append([]byte(nil), typed...)
	case StructuredValue:
		t.ValueBlob = append([]byte(nil), typed...)
	case TextValue:
		t.ValueText = string(typed)
	case nil:
	default:
		t.ValueText = typed.String()
	}
}

// Patch is one value change applied by Update or UpdateMany.
type Patch struct {
	ID        uuid.UUID
	Value     Value
	UpdatedAt time.Time
}

func cloneTranslation(src *Translation) *Translation {
	if src == nil {
		return nil
	}
	copied := *src
	copied.ValueBinary = append([]byte(nil), src.ValueBinary...)
	copied.ValueBlob = append([]byte(nil), src.ValueBlob...)
	if len(src.ValueBinary) == 0 {
		copied.ValueBinary = nil
	}
	if len(src.ValueBlob) == 0 {
		copied.ValueBlob = nil
	}
	return &copied
}
