package translations

import "testing"

func TestResolveSlot(t *testing.T) {
	cases := map[string]Slot{
		"blob NULL":                   SlotStructured,
		"mediumblob NULL":             SlotStructured,
		"binary(16) NULL":             SlotBinary,
		"varbinary(128)":              SlotBinary,
		"text NULL":                   SlotLongText,
		"mediumtext NULL":             SlotLongText,
		"varchar(255) NOT NULL":       SlotText,
		"char(1) NOT NULL default ''": SlotText,
		"":                            SlotText,
		"TEXT":                        SlotLongText,
	}
	for storage, want := range cases {
		if got := ResolveSlot(storage); got != want {
			t.Fatalf("ResolveSlot(%q) = %s, want %s", storage, got, want)
		}
	}
}

func TestTranslationSetValueTouchesOnlyItsSlot(t *testing.T) {
	row := &Translation{ValueText: "keep"}
	row.SetValue(LongTextValue("<p>long</p>"))
	row.SetValue(StructuredValue(`{"a":1}`))

	if row.ValueText != "keep" {
		t.Fatalf("expected text slot untouched, got %q", row.ValueText)
	}
	if got := row.Value(SlotLongText).String(); got != "<p>long</p>" {
		t.Fatalf("unexpected long text %q", got)
	}
	if got := row.Value(SlotStructured).String(); got != `{"a":1}` {
		t.Fatalf("unexpected structured value %q", got)
	}
	if got := ParseValue(SlotBinary, "").String(); got != "" {
		t.Fatalf("expected empty binary value, got %q", got)
	}
	if ParseValue(SlotBinary, "x").Slot() != SlotBinary {
		t.Fatalf("expected binary slot")
	}
}
