package http

import (
	"net/http"

	settingscmd "github.com/goliatone/go-cms-l10n/internal/commands/settings"
	"github.com/goliatone/go-cms-l10n/internal/settings"
)

type settingsPayload struct {
	Languages        []string `json:"languages"`
	DefaultLanguage  string   `json:"default_language,omitempty"`
	AliasSuffix      bool     `json:"alias_suffix"`
	AddLanguageToURL bool     `json:"add_language_to_url"`
	FolderURL        bool     `json:"folder_url"`
}

func (api *AdminAPI) registerSettingsRoutes(mux *http.ServeMux, base string) {
	path := joinPath(base, "settings")
	mux.HandleFunc("GET "+path, api.handleSettingsGet)
	mux.HandleFunc("PUT "+path, api.handleSettingsUpdate)
	mux.HandleFunc("GET "+joinPath(base, "languages"), api.handleLanguageOptions)
}

func (api *AdminAPI) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	current, err := api.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (api *AdminAPI) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var payload settingsPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_json", Message: err.Error()})
		return
	}
	ctx := r.Context()
	if api.saver != nil {
		err := api.saver.Execute(ctx, settingscmd.SaveSettingsCommand{
			Languages:        payload.Languages,
			DefaultLanguage:  payload.DefaultLanguage,
			AliasSuffix:      payload.AliasSuffix,
			AddLanguageToURL: payload.AddLanguageToURL,
			FolderURL:        payload.FolderURL,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		current, err := api.settings.Get(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, current)
		return
	}
	saved, err := api.settings.Save(ctx, settings.Input{
		Languages:        payload.Languages,
		DefaultLanguage:  payload.DefaultLanguage,
		AliasSuffix:      payload.AliasSuffix,
		AddLanguageToURL: payload.AddLanguageToURL,
		FolderURL:        payload.FolderURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (api *AdminAPI) handleLanguageOptions(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.settings == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	options, err := api.settings.LanguageOptions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": options})
}
