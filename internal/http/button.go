package http

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/google/uuid"
)

// ButtonRow is the list-view row an edit button is rendered for.
type ButtonRow struct {
	ID    uuid.UUID
	Title string
}

var editButtonTemplate = template.Must(template.New("l10n_button").Parse(
	`<a href="{{.Href}}" title="{{.Title}}" class="i18nl10n-edit">L10N</a>`,
))

// EditButton renders the list-view action linking to the page's
// localizations. href is the operation target; the row id is appended as
// the node parameter.
func (api *AdminAPI) EditButton(row ButtonRow, href string) template.HTML {
	target := href
	if target == "" {
		target = joinPath(api.basePath, "pages") + "/" + row.ID.String() + "/localizations"
	} else {
		sep := "&"
		if !strings.Contains(target, "?") {
			sep = "?"
		}
		target = target + sep + "node=" + row.ID.String()
	}
	var buf bytes.Buffer
	err := editButtonTemplate.Execute(&buf, struct {
		Href  string
		Title string
	}{
		Href:  target,
		Title: api.labels.Label(context.Background(), "MSC.editL10n", `"`+row.Title+`"`),
	})
	if err != nil {
		return ""
	}
	return template.HTML(buf.String())
}
