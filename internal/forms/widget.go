package forms

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/microcosm-cc/bluemonday"
)

// InputType selects the HTML control rendered for a widget.
type InputType string

const (
	InputText     InputType = "text"
	InputTextarea InputType = "textarea"
	InputCheckbox InputType = "checkbox"
	InputSelect   InputType = "select"
)

// ErrUnknownInputType is returned for definitions with an unsupported type.
var ErrUnknownInputType = errors.New("forms: unknown input type")

// Option is a select choice.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Definition describes how a field is edited: control type, label and the
// rules a submitted value must pass.
type Definition struct {
	InputType   InputType `json:"input_type"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required,omitempty"`
	MaxLength   int       `json:"max_length,omitempty"`
	Pattern     string    `json:"pattern,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	// AllowHTML keeps user-generated-content markup in textarea values;
	// everything else is stripped by bluemonday.
	AllowHTML bool   `json:"allow_html,omitempty"`
	Class     string `json:"class,omitempty"`
	// Rules are extra ozzo rules run after the built-in ones.
	Rules []validation.Rule `json:"-"`
}

// Validate checks the definition itself.
func (d Definition) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.InputType, validation.Required, validation.In(InputText, InputTextarea, InputCheckbox, InputSelect)),
		validation.Field(&d.MaxLength, validation.Min(0)),
		validation.Field(&d.Options, validation.When(d.InputType == InputSelect, validation.Required)),
		validation.Field(&d.Pattern, validation.By(func(value any) error {
			pattern, _ := value.(string)
			if pattern == "" {
				return nil
			}
			_, err := regexp.Compile(pattern)
			return err
		})),
	)
}

// Widget is one rendered input bound to a language.
type Widget struct {
	Name          string
	Language      string
	LanguageLabel string
	Value         string
	Definition    Definition
	Errors        []string
}

// NewWidget builds a widget for language with the stored value.
func NewWidget(def Definition, name, language, languageLabel, value string) *Widget {
	if def.InputType == "" {
		def.InputType = InputText
	}
	return &Widget{
		Name:          name,
		Language:      language,
		LanguageLabel: languageLabel,
		Value:         value,
		Definition:    def,
	}
}

// HasErrors reports whether the last Validate call failed.
func (w *Widget) HasErrors() bool {
	return len(w.Errors) > 0
}

// AddError marks the widget invalid.
func (w *Widget) AddError(msg string) {
	w.Errors = append(w.Errors, msg)
}

// Validate normalizes and checks a submitted value. On failure the widget is
// marked and the error returned; the widget value is left untouched.
func (w *Widget) Validate(raw string) (string, error) {
	value := w.normalize(raw)
	if err := validation.Validate(value, w.rules()...); err != nil {
		w.AddError(err.Error())
		return "", err
	}
	return value, nil
}

var ugcPolicy = bluemonday.UGCPolicy()

// normalize keeps the submitted value as typed. Markup is only rewritten for
// textareas that render it, and whitespace-only input counts as empty.
func (w *Widget) normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	switch w.Definition.InputType {
	case InputCheckbox:
		if raw == "0" {
			return ""
		}
		return "1"
	case InputTextarea:
		if w.Definition.AllowHTML {
			return ugcPolicy.Sanitize(raw)
		}
	}
	return raw
}

func (w *Widget) rules() []validation.Rule {
	def := w.Definition
	rules := []validation.Rule{}
	if def.Required {
		rules = append(rules, validation.Required.Error(fmt.Sprintf("%s is required", labelOr(def.Label, "value"))))
	}
	if def.MaxLength > 0 {
		rules = append(rules, validation.RuneLength(0, def.MaxLength))
	}
	if def.Pattern != "" {
		if re, err := regexp.Compile(def.Pattern); err == nil {
			rules = append(rules, validation.Match(re))
		}
	}
	if def.InputType == InputSelect && len(def.Options) > 0 {
		allowed := make([]any, 0, len(def.Options))
		for _, opt := range def.Options {
			allowed = append(allowed, opt.Value)
		}
		rules = append(rules, validation.In(allowed...))
	}
	return append(rules, def.Rules...)
}

func labelOr(label, fallback string) string {
	if strings.TrimSpace(label) == "" {
		return fallback
	}
	return label
}
