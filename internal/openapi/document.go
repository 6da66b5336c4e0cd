package openapi

import (
	"sort"
	"strings"
)

// Document is the subset of an OpenAPI 3 document the admin adapter
// publishes.
type Document struct {
	OpenAPI    string                          `json:"openapi"`
	Info       Info                            `json:"info"`
	Paths      map[string]map[string]Operation `json:"paths"`
	Components Components                      `json:"components,omitempty"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type Components struct {
	Schemas map[string]any `json:"schemas,omitempty"`
}

// Operation describes one method on a path.
type Operation struct {
	OperationID string              `json:"operationId"`
	Summary     string              `json:"summary,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type Parameter struct {
	Name     string         `json:"name"`
	In       string         `json:"in"`
	Required bool           `json:"required,omitempty"`
	Schema   map[string]any `json:"schema,omitempty"`
}

type RequestBody struct {
	Required bool                 `json:"required,omitempty"`
	Content  map[string]MediaType `json:"content"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema map[string]any `json:"schema,omitempty"`
}

// NewDocument constructs an empty document.
func NewDocument(title, version string) *Document {
	return &Document{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:   title,
			Version: version,
		},
		Paths:      map[string]map[string]Operation{},
		Components: Components{Schemas: map[string]any{}},
	}
}

// AddSchema registers a component schema.
func (d *Document) AddSchema(name string, schema map[string]any) {
	if d == nil || name == "" || schema == nil {
		return
	}
	if d.Components.Schemas == nil {
		d.Components.Schemas = map[string]any{}
	}
	d.Components.Schemas[name] = schema
}

// AddOperation registers op under path for method. Methods are stored in
// lower case as OpenAPI expects.
func (d *Document) AddOperation(method, path string, op Operation) {
	if d == nil || method == "" || path == "" {
		return
	}
	if d.Paths == nil {
		d.Paths = map[string]map[string]Operation{}
	}
	item, ok := d.Paths[path]
	if !ok {
		item = map[string]Operation{}
		d.Paths[path] = item
	}
	if op.Responses == nil {
		op.Responses = map[string]Response{"default": {Description: "unexpected error"}}
	}
	item[strings.ToLower(method)] = op
}

// OperationIDs lists every registered operation id in sorted order.
func (d *Document) OperationIDs() []string {
	if d == nil {
		return nil
	}
	var out []string
	for _, item := range d.Paths {
		for _, op := range item {
			if op.OperationID != "" {
				out = append(out, op.OperationID)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Ref returns a schema reference to a registered component.
func Ref(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

// JSON wraps schema as an application/json media map.
func JSON(schema map[string]any) map[string]MediaType {
	return map[string]MediaType{"application/json": {Schema: schema}}
}
