// Package http provides the optional admin adapter for the localization module.
//
// Routes mount under a configurable base (default /admin/l10n):
//   - Translator wizard: GET|POST /translator?key=&table=&field=&id=
//   - Page localizations: GET /pages/{id}/localizations
//   - Settings: GET /settings, PUT /settings
//   - Language catalog options: GET /languages
//   - Route description: GET /openapi.json
//
// Host applications can register handlers on their own mux/router as needed.
package http
