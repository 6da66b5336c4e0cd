package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-l10n/internal/domain"
	"github.com/goliatone/go-cms-l10n/internal/i18n"
	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/text/language"
)

// requestContext carries the backend user's locale for label lookups. An
// explicit "locale" query parameter wins over Accept-Language.
func requestContext(r *http.Request) context.Context {
	ctx := r.Context()
	if locale := strings.TrimSpace(r.URL.Query().Get("locale")); locale != "" {
		return i18n.WithLocale(ctx, locale)
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ctx
	}
	base, _ := tags[0].Base()
	return i18n.WithLocale(ctx, base.String())
}

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}
	fields := fieldErrors(err)

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	case domain.KindValidation:
		return http.StatusUnprocessableEntity, errorResponse{Error: "validation_failed", Message: err.Error(), Fields: fields}
	case domain.KindMutualExclusion:
		return http.StatusConflict, errorResponse{Error: "mutual_exclusion", Message: err.Error(), Fields: fields}
	case domain.KindConsistency:
		return http.StatusConflict, errorResponse{Error: "consistency", Message: err.Error()}
	case domain.KindMissingParentLocalization:
		return http.StatusConflict, errorResponse{Error: "missing_parent_localization", Message: err.Error()}
	case domain.KindRuntimeSave:
		return http.StatusInternalServerError, errorResponse{Error: "save_failed", Message: err.Error()}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error(), Fields: fields}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error()}
}

func fieldErrors(err error) map[string]string {
	var errs validation.Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			out[field] = fieldErr.Error()
		}
	}
	return out
}
