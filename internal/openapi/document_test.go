package openapi

import "testing"

func TestAddOperationLowercasesMethodAndDefaultsResponses(t *testing.T) {
	doc := NewDocument("test", "1.0.0")
	doc.AddOperation("GET", "/items", Operation{OperationID: "listItems"})
	doc.AddOperation("", "/items", Operation{OperationID: "ignored"})

	op, ok := doc.Paths["/items"]["get"]
	if !ok {
		t.Fatalf("expected get operation, got %v", doc.Paths)
	}
	if _, ok := op.Responses["default"]; !ok {
		t.Fatalf("expected default response, got %v", op.Responses)
	}
	if ids := doc.OperationIDs(); len(ids) != 1 || ids[0] != "listItems" {
		t.Fatalf("unexpected operation ids %v", ids)
	}
}

func TestRefPointsAtComponent(t *testing.T) {
	doc := NewDocument("test", "1.0.0")
	doc.AddSchema("Item", map[string]any{"type": "object"})
	doc.AddSchema("", map[string]any{"type": "object"})
	if len(doc.Components.Schemas) != 1 {
		t.Fatalf("expected one schema, got %v", doc.Components.Schemas)
	}
	if ref := Ref("Item")["$ref"]; ref != "#/components/schemas/Item" {
		t.Fatalf("unexpected ref %v", ref)
	}
}
