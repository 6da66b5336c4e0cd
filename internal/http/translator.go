package http

import (
	"net/http"

	"github.com/goliatone/go-cms-l10n/internal/translations"
)

func (api *AdminAPI) registerTranslatorRoutes(mux *http.ServeMux, base string) {
	path := joinPath(base, "translator")
	mux.HandleFunc("GET "+path, api.handleTranslator)
	mux.HandleFunc("POST "+path, api.handleTranslator)
}

func (api *AdminAPI) handleTranslator(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.translator == nil || api.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	ctx := requestContext(r)
	query := r.URL.Query()
	req := translations.Request{
		Key:        query.Get("key"),
		Table:      query.Get("table"),
		Field:      query.Get("field"),
		ParentID:   query.Get("id"),
		RequestURI: r.URL.RequestURI(),
		ReturnURL:  query.Get("return"),
	}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_form", Message: err.Error()})
			return
		}
		req.FormSubmit = r.PostForm.Get(translations.FormSubmitField)
		req.Values = make(map[string]string, len(r.PostForm))
		for name := range r.PostForm {
			req.Values[name] = r.PostForm.Get(name)
		}
	}

	snapshot, err := api.settings.Snapshot(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	req.Snapshot = snapshot

	result, err := api.translator.RenderOrApply(ctx, req)
	if err != nil {
		api.logger.WithContext(ctx).Warn("http.translator.failed", "table", req.Table, "field", req.Field, "id", req.ParentID, "error", err)
		writeError(w, err)
		return
	}
	if result.IsRedirect() {
		http.Redirect(w, r, result.Redirect, result.Status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(result.Status)
	if err := result.Form.Render(w); err != nil {
		api.logger.WithContext(ctx).Error("http.translator.render_failed", "error", err)
	}
}
