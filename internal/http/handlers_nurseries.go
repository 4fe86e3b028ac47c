package httpx

import (
	"net/http"

	"github.com/plantflix/marketplace/internal/domain/model"
	"github.com/plantflix/marketplace/internal/service"
)

// NurseryHandlers provides HTTP handlers for nursery storefronts.
type NurseryHandlers struct {
	Svc *service.NurseryService
}

// List handles GET /api/nurseries. Shoppers only see approved storefronts;
// super admins see everything.
func (h *NurseryHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())
	limit, offset := ParseLimitOffset(r, DefaultListLimit, MaxListLimit)

	nurseries, err := h.Svc.List(r.Context(), sess, limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, nurseries)
}

// Get handles GET /api/nurseries/{id}.
func (h *NurseryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	nursery, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, nursery)
}

// GetOwn handles GET /api/nurseries/mine for the logged-in nursery admin.
func (h *NurseryHandlers) GetOwn(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	nursery, err := h.Svc.GetOwn(r.Context(), sess)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, nursery)
}

// Register handles POST /api/nurseries. A shopper who registers a nursery
// becomes its admin; approval stays with the super admins.
func (h *NurseryHandlers) Register(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.CreateNurseryRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	nursery, err := h.Svc.Register(r.Context(), sess, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, nursery)
}

// Update handles PATCH /api/nurseries/{id}.
func (h *NurseryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.UpdateNurseryRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	nursery, err := h.Svc.Update(r.Context(), sess, r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, nursery)
}

// Delete handles DELETE /api/nurseries/{id}.
func (h *NurseryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	if _, err := h.Svc.Delete(r.Context(), sess, r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
