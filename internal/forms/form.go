package forms

import (
	"bytes"
	"html/template"
	"io"
)

// Form is the translator view model: one widget per language plus the
// surrounding wizard chrome.
type Form struct {
	ID          string
	Action      string
	Headline    string
	BackURL     string
	BackLabel   string
	SubmitLabel string
	Widgets     []*Widget
}

// Widget returns the widget bound to language.
func (f *Form) Widget(language string) (*Widget, bool) {
	if f == nil {
		return nil, false
	}
	for _, w := range f.Widgets {
		if w.Language == language {
			return w, true
		}
	}
	return nil, false
}

// HasErrors reports whether any widget failed validation.
func (f *Form) HasErrors() bool {
	if f == nil {
		return false
	}
	for _, w := range f.Widgets {
		if w.HasErrors() {
			return true
		}
	}
	return false
}

var formTemplate = template.Must(template.New("translator").Funcs(template.FuncMap{
	"checked": func(value string) bool { return value != "" && value != "0" },
}).Parse(`<div class="i18nl10n-translator">
<div id="tl_buttons"><a href="{{.BackURL}}" class="header_back" title="{{.BackLabel}}">{{.BackLabel}}</a></div>
{{if .Headline}}<h2 class="sub_headline">{{.Headline}}</h2>{{end}}
<form id="{{.ID}}" action="{{.Action}}" method="post" class="tl_form">
<input type="hidden" name="FORM_SUBMIT" value="{{.ID}}">
<div class="tl_formbody_edit">
{{range .Widgets}}<fieldset class="tl_box i18nl10n-language i18nl10n-{{.Language}}{{if .Errors}} error{{end}}">
<legend>{{.LanguageLabel}}</legend>
<label for="ctrl_{{.Name}}">{{.Definition.Label}}</label>
{{if eq .Definition.InputType "textarea"}}<textarea name="{{.Name}}" id="ctrl_{{.Name}}" class="tl_textarea {{.Definition.Class}}" rows="12" cols="80">{{.Value}}</textarea>
{{else if eq .Definition.InputType "checkbox"}}<input type="checkbox" name="{{.Name}}" id="ctrl_{{.Name}}" class="tl_checkbox {{.Definition.Class}}" value="1"{{if checked .Value}} checked{{end}}>
{{else if eq .Definition.InputType "select"}}{{$value := .Value}}<select name="{{.Name}}" id="ctrl_{{.Name}}" class="tl_select {{.Definition.Class}}">
{{range .Definition.Options}}<option value="{{.Value}}"{{if eq .Value $value}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
{{else}}<input type="text" name="{{.Name}}" id="ctrl_{{.Name}}" class="tl_text {{.Definition.Class}}" value="{{.Value}}"{{if .Definition.MaxLength}} maxlength="{{.Definition.MaxLength}}"{{end}}>
{{end}}{{range .Errors}}<p class="tl_error">{{.}}</p>
{{end}}{{if .Definition.Description}}<p class="tl_help">{{.Definition.Description}}</p>
{{end}}</fieldset>
{{end}}</div>
<div class="tl_formbody_submit"><div class="tl_submit_container">
<button type="submit" name="save" id="save" class="tl_submit">{{.SubmitLabel}}</button>
</div></div>
</form>
</div>
`))

// Render writes the form as HTML.
func (f *Form) Render(w io.Writer) error {
	return formTemplate.Execute(w, f)
}

// HTML renders the form into a template-safe string.
func (f *Form) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
