package http

import (
	"net/http"

	"github.com/goliatone/go-cms-l10n/internal/openapi"
)

// APIVersion is published in the openapi document of the admin routes.
const APIVersion = "1.0.0"

func (api *AdminAPI) registerOpenAPIRoute(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "openapi.json"), api.handleOpenAPI)
}

func (api *AdminAPI) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.Document())
}

// Document describes the admin routes mounted under the current base path.
func (api *AdminAPI) Document() *openapi.Document {
	base := api.BasePath()
	doc := openapi.NewDocument("l10n admin", APIVersion)

	doc.AddSchema("Settings", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"languages":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"default_language":    map[string]any{"type": "string"},
			"alias_suffix":        map[string]any{"type": "boolean"},
			"add_language_to_url": map[string]any{"type": "boolean"},
			"folder_url":          map[string]any{"type": "boolean"},
		},
		"required": []string{"languages"},
	})
	doc.AddSchema("Localization", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "format": "uuid"},
			"page_id":  map[string]any{"type": "string", "format": "uuid"},
			"language": map[string]any{"type": "string"},
			"type":     map[string]any{"type": "string"},
			"title":    map[string]any{"type": "string"},
			"alias":    map[string]any{"type": "string"},
		},
	})
	doc.AddSchema("Error", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"error":   map[string]any{"type": "string"},
			"message": map[string]any{"type": "string"},
			"fields":  map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
		},
	})

	invalid := openapi.Response{Description: "invalid request", Content: openapi.JSON(openapi.Ref("Error"))}
	html := map[string]openapi.MediaType{"text/html": {}}
	translatorParams := []openapi.Parameter{
		{Name: "key", In: "query", Required: true, Schema: map[string]any{"type": "string"}},
		{Name: "table", In: "query", Required: true, Schema: map[string]any{"type": "string"}},
		{Name: "field", In: "query", Required: true, Schema: map[string]any{"type": "string"}},
		{Name: "id", In: "query", Required: true, Schema: map[string]any{"type": "string"}},
		{Name: "return", In: "query", Schema: map[string]any{"type": "string"}},
	}

	translator := joinPath(base, "translator")
	doc.AddOperation(http.MethodGet, translator, openapi.Operation{
		OperationID: "renderTranslator",
		Summary:     "Render the per-language field form",
		Parameters:  translatorParams,
		Responses: map[string]openapi.Response{
			"200": {Description: "translator form", Content: html},
			"400": invalid,
		},
	})
	doc.AddOperation(http.MethodPost, translator, openapi.Operation{
		OperationID: "applyTranslator",
		Summary:     "Save changed translations",
		Parameters:  translatorParams,
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content:  map[string]openapi.MediaType{"application/x-www-form-urlencoded": {}},
		},
		Responses: map[string]openapi.Response{
			"200": {Description: "form with validation errors", Content: html},
			"303": {Description: "saved, redirect back to the form"},
			"400": invalid,
		},
	})

	doc.AddOperation(http.MethodGet, joinPath(base, "pages")+"/{id}/localizations", openapi.Operation{
		OperationID: "listLocalizations",
		Summary:     "List the localizations of a page",
		Parameters: []openapi.Parameter{
			{Name: "id", In: "path", Required: true, Schema: map[string]any{"type": "string", "format": "uuid"}},
		},
		Responses: map[string]openapi.Response{
			"200": {Description: "localization rows", Content: openapi.JSON(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"page_id": map[string]any{"type": "string", "format": "uuid"},
					"items":   map[string]any{"type": "array", "items": openapi.Ref("Localization")},
				},
			})},
			"400": invalid,
		},
	})

	settingsPath := joinPath(base, "settings")
	doc.AddOperation(http.MethodGet, settingsPath, openapi.Operation{
		OperationID: "getSettings",
		Summary:     "Read the language configuration",
		Responses: map[string]openapi.Response{
			"200": {Description: "current settings", Content: openapi.JSON(openapi.Ref("Settings"))},
		},
	})
	doc.AddOperation(http.MethodPut, settingsPath, openapi.Operation{
		OperationID: "saveSettings",
		Summary:     "Validate and store the language configuration",
		RequestBody: &openapi.RequestBody{Required: true, Content: openapi.JSON(openapi.Ref("Settings"))},
		Responses: map[string]openapi.Response{
			"200": {Description: "stored settings", Content: openapi.JSON(openapi.Ref("Settings"))},
			"400": invalid,
			"409": {Description: "mutually exclusive url options", Content: openapi.JSON(openapi.Ref("Error"))},
			"422": {Description: "validation failed", Content: openapi.JSON(openapi.Ref("Error"))},
		},
	})
	doc.AddOperation(http.MethodGet, joinPath(base, "languages"), openapi.Operation{
		OperationID: "listLanguages",
		Summary:     "Language options for the settings form",
		Responses: map[string]openapi.Response{
			"200": {Description: "language catalog"},
		},
	})
	return doc
}
