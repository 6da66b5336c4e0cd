package translations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/forms"
	"github.com/goliatone/go-cms-l10n/internal/identity"
	"github.com/goliatone/go-cms-l10n/internal/languages"
	"github.com/goliatone/go-cms-l10n/internal/logging"
	"github.com/goliatone/go-cms-l10n/internal/runtimeconfig"
	"github.com/goliatone/go-cms-l10n/pkg/interfaces"
)

const (
	// FormSubmitField carries the id of the submitted form.
	FormSubmitField = "FORM_SUBMIT"
	formIDPrefix    = "tl_i18nl10n_translator_"
	widgetPrefix    = "i18nl10n"
)

// FormID is the id of the translator form of one field of one record.
func FormID(table, field, parentID string) string {
	return formIDPrefix + strings.Join([]string{table, field, parentID}, "_")
}

// WidgetName is the input name of one language's widget.
func WidgetName(table, field, parentID, language string) string {
	return strings.Join([]string{widgetPrefix, table, field, parentID, language}, "_")
}

// Request is one translator call: which field of which record, the request
// URI it came from, and the submitted form values when posting.
type Request struct {
	Key        string
	Table      string
	Field      string
	ParentID   string
	RequestURI string
	// ReturnURL overrides the back link derived from RequestURI.
	ReturnURL  string
	FormSubmit string
	Values     map[string]string
	Snapshot   runtimeconfig.Snapshot
}

// FormID is the id of the form this request renders.
func (r Request) FormID() string {
	return FormID(r.Table, r.Field, r.ParentID)
}

func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Key, validation.Required),
		validation.Field(&r.Table, validation.Required),
		validation.Field(&r.Field, validation.Required),
		validation.Field(&r.ParentID, validation.Required),
	)
}

// Result is either a form to display (Status 200) or a redirect (Status 303).
type Result struct {
	Status   int
	Form     *forms.Form
	Redirect string
	// Submitted is true when the request posted this form.
	Submitted bool
	// Saved lists the languages whose value changed and was written.
	Saved []string
}

// IsRedirect reports whether the caller should redirect instead of rendering.
func (r *Result) IsRedirect() bool {
	return r != nil && r.Redirect != ""
}

type ControllerOption func(*Controller)

func WithNotifier(notifier interfaces.Notifier) ControllerOption {
	return func(c *Controller) {
		if notifier != nil {
			c.notifier = notifier
		}
	}
}

func WithLabels(labels interfaces.Labels) ControllerOption {
	return func(c *Controller) {
		if labels != nil {
			c.labels = labels
		}
	}
}

// WithLanguageCatalog resolves widget legends from the language catalog.
func WithLanguageCatalog(catalog languages.Repository) ControllerOption {
	return func(c *Controller) {
		c.catalog = catalog
	}
}

func WithLogger(logger interfaces.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) ControllerOption {
	return func(c *Controller) {
		if clock != nil {
			c.now = clock
		}
	}
}

// Controller drives the generic field translator: one widget per enabled
// language, rows created lazily, changed values saved in one batch.
type Controller struct {
	repo     Repository
	fields   *Registry
	catalog  languages.Repository
	notifier interfaces.Notifier
	labels   interfaces.Labels
	logger   interfaces.Logger
	now      func() time.Time
}

func NewController(repo Repository, fields *Registry, opts ...ControllerOption) *Controller {
	c := &Controller{
		repo:     repo,
		fields:   fields,
		notifier: discardNotifier{},
		labels:   keyLabels{},
		logger:   logging.NoOp(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// RenderOrApply displays the translator or, when the request submits this
// form, applies the changed values and redisplays it. A storage failure
// while applying queues an error message and yields a 303 redirect back to
// the request URI.
func (c *Controller) RenderOrApply(ctx context.Context, req Request) (*Result, error) {
	const op = "translations.render_or_apply"
	if err := req.Validate(); err != nil {
		return nil, domain.NewError(domain.KindValidation, op, "invalid translator request", err)
	}
	field, err := c.fields.Lookup(req.Table, req.Field)
	if err != nil {
		return nil, err
	}
	langs := req.Snapshot.Languages()
	if len(langs) == 0 {
		return nil, domain.NewError(domain.KindConsistency, op, "no languages enabled", nil)
	}

	logger := logging.WithTranslationContext(c.logger, req.Table, req.Field, req.ParentID).WithContext(ctx)

	rows := make([]*Translation, len(langs))
	widgets := make([]*forms.Widget, len(langs))
	widgetDef := field.Widget()
	for i, lang := range langs {
		row, err := c.fetchOrCreate(ctx, Key{Table: req.Table, Field: req.Field, ParentID: req.ParentID, Language: lang})
		if err != nil {
			logger.Error("translations.fetch_or_create.failed", "language", lang, "error", err)
			return nil, err
		}
		rows[i] = row
		widgets[i] = forms.NewWidget(
			widgetDef,
			WidgetName(req.Table, req.Field, req.ParentID, lang),
			lang,
			c.languageLabel(ctx, lang),
			row.Value(field.Slot).String(),
		)
	}

	result := &Result{Status: http.StatusOK}
	if req.FormSubmit == req.FormID() {
		result.Submitted = true
		saved, err := c.apply(ctx, field, rows, widgets, req.Values)
		if err != nil {
			logger.Error("translations.apply.failed", "error", err)
			c.notifier.AddError(ctx, c.labels.Label(ctx, "MSC.i18nl10n_saveFailed", err.Error()))
			return &Result{Status: http.StatusSeeOther, Redirect: req.RequestURI, Submitted: true}, nil
		}
		result.Saved = saved
		if len(saved) > 0 {
			logger.Info("translations.applied", "languages", saved)
		}
	}

	result.Form = &forms.Form{
		ID:          req.FormID(),
		Action:      req.RequestURI,
		Headline:    c.labels.Label(ctx, "MSC.i18nl10n_translator", req.Table, req.Field, req.ParentID),
		BackURL:     c.backURL(req),
		BackLabel:   c.labels.Label(ctx, "MSC.backBT"),
		SubmitLabel: c.labels.Label(ctx, "MSC.apply"),
		Widgets:     widgets,
	}
	return result, nil
}

// apply validates every submitted widget, then writes the changed values in
// one batch. Widgets missing from values keep their stored value. Widgets are
// updated only after the batch succeeds.
func (c *Controller) apply(ctx context.Context, field *Field, rows []*Translation, widgets []*forms.Widget, values map[string]string) ([]string, error) {
	var (
		patches []Patch
		changed []int
		pending = make(map[int]string)
	)
	stamp := c.now()
	for i, w := range widgets {
		raw, ok := values[w.Name]
		if !ok {
			continue
		}
		value, err := w.Validate(raw)
		if err != nil {
			continue
		}
		if value == rows[i].Value(field.Slot).String() {
			continue
		}
		patches = append(patches, Patch{ID: rows[i].ID, Value: ParseValue(field.Slot, value), UpdatedAt: stamp})
		changed = append(changed, i)
		pending[i] = value
	}
	if len(patches) == 0 {
		return nil, nil
	}
	if err := c.repo.UpdateMany(ctx, patches); err != nil {
		return nil, domain.NewError(domain.KindRuntimeSave, "translations.apply", "saving translations failed", err)
	}
	saved := make([]string, 0, len(changed))
	for _, i := range changed {
		widgets[i].Value = pending[i]
		rows[i].SetValue(ParseValue(field.Slot, pending[i]))
		rows[i].UpdatedAt = stamp
		saved = append(saved, widgets[i].Language)
	}
	return saved, nil
}

// fetchOrCreate loads the row for key, creating it empty on first access.
// A concurrent insert of the same key is resolved by reading the winner.
func (c *Controller) fetchOrCreate(ctx context.Context, key Key) (*Translation, error) {
	row, err := c.repo.Find(ctx, key)
	if err == nil {
		return row, nil
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}
	created, err := c.repo.Create(ctx, &Translation{
		ID:          identity.TranslationUUID(key.Table, key.Field, key.ParentID, key.Language),
		ParentTable: key.Table,
		ParentID:    key.ParentID,
		Field:       key.Field,
		Language:    key.Language,
		UpdatedAt:   c.now(),
	})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, ErrDuplicateTranslation) {
		return nil, err
	}
	return c.repo.Find(ctx, key)
}

func (c *Controller) languageLabel(ctx context.Context, code string) string {
	if c.catalog != nil {
		if lang, err := c.catalog.GetByCode(ctx, code); err == nil && lang != nil && lang.Name != "" {
			return fmt.Sprintf("%s (%s)", lang.Name, code)
		}
	}
	return strings.ToUpper(code)
}

func (c *Controller) backURL(req Request) string {
	if req.ReturnURL != "" {
		return req.ReturnURL
	}
	u, err := url.Parse(req.RequestURI)
	if err != nil {
		return req.RequestURI
	}
	// Rebuilt by hand so the remaining parameters keep their order.
	params := strings.Split(u.RawQuery, "&")
	kept := params[:0]
	for _, param := range params {
		if param == "" {
			continue
		}
		name, _, _ := strings.Cut(param, "=")
		if decoded, err := url.QueryUnescape(name); err == nil && decoded == "key" {
			continue
		}
		kept = append(kept, param)
	}
	u.RawQuery = strings.Join(kept, "&")
	return u.String()
}

type discardNotifier struct{}

func (discardNotifier) AddError(context.Context, string)        {}
func (discardNotifier) AddConfirmation(context.Context, string) {}
func (discardNotifier) AddInfo(context.Context, string)         {}

type keyLabels struct{}

func (keyLabels) Label(_ context.Context, key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return key + " " + fmt.Sprint(args...)
}
