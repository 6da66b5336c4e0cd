package http

import (
	"net/http"

	"github.com/goliatone/go-cms-l10n/internal/pages"
	"github.com/google/uuid"
)

type localizationList struct {
	PageID uuid.UUID                 `json:"page_id"`
	Items  []*pages.PageLocalization `json:"items"`
}

func (api *AdminAPI) registerLocalizationRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "pages")+"/{id}/localizations", api.handleLocalizationList)
}

func (api *AdminAPI) handleLocalizationList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.localizations == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_id", Message: err.Error()})
		return
	}
	items, err := api.localizations.ListByPage(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []*pages.PageLocalization{}
	}
	writeJSON(w, http.StatusOK, localizationList{PageID: id, Items: items})
}
