package httpx

import (
	"net/http"

	"github.com/plantflix/marketplace/internal/domain/model"
	"github.com/plantflix/marketplace/internal/service"
)

// SettingsHandlers provides HTTP handlers for marketplace commission
// settings. Both routes sit behind the super-admin role check.
type SettingsHandlers struct {
	Svc *service.SettingsService
}

// Get handles GET /api/settings/commission.
func (h *SettingsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Svc.Get(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings/commission. Existing orders keep their
// snapshotted rate.
func (h *SettingsHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.UpdateCommissionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	settings, err := h.Svc.Update(r.Context(), sess, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}
