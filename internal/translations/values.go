package translations

import (
	"encoding/json"
	"strings"
)

// Slot names the value column a field is stored in.
type Slot string

const (
	SlotText       Slot = "value_text"
	SlotLongText   Slot = "value_textarea"
	SlotBinary     Slot = "value_binary"
	SlotStructured Slot = "value_blob"
)

// Column returns the database column for the slot.
func (s Slot) Column() string { return string(s) }

// ResolveSlot maps a declared SQL storage type to a value slot. Matching is a
// case-insensitive substring test in priority blob, binary, text.
func ResolveSlot(storageType string) Slot {
	declared := strings.ToLower(storageType)
	switch {
	case strings.Contains(declared, "blob"):
		return SlotStructured
	case strings.Contains(declared, "binary"):
		return SlotBinary
	case strings.Contains(declared, "text"):
		return SlotLongText
	default:
		return SlotText
	}
}

// Value is a translated field value. The concrete type fixes the slot.
type Value interface {
	Slot() Slot
	String() string
}

type TextValue string

func (TextValue) Slot() Slot       { return SlotText }
func (v TextValue) String() string { return string(v) }

type LongTextValue string

func (LongTextValue) Slot() Slot       { return SlotLongText }
func (v LongTextValue) String() string { return string(v) }

type BinaryValue []byte

func (BinaryValue) Slot() Slot       { return SlotBinary }
func (v BinaryValue) String() string { return string(v) }

// StructuredValue holds serialized data, usually JSON.
type StructuredValue json.RawMessage

func (StructuredValue) Slot() Slot       { return SlotStructured }
func (v StructuredValue) String() string { return string(v) }

// ParseValue wraps a submitted raw string in the value type for slot.
func ParseValue(slot Slot, raw string) Value {
	switch slot {
	case SlotLongText:
		return LongTextValue(raw)
	case SlotBinary:
		if raw == "" {
			return BinaryValue(nil)
		}
		return BinaryValue(raw)
	case SlotStructured:
		if raw == "" {
			return StructuredValue(nil)
		}
		return StructuredValue(raw)
	default:
		return TextValue(raw)
	}
}
