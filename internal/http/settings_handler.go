package api

import (
	"encoding/json"
	"net/http"

	"rating-service/internal/domain/settings"
	"rating-service/internal/platform/apperr"
)

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settingsSvc.Get(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var cfg settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if err := h.settingsSvc.Update(r.Context(), cfg); err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}
