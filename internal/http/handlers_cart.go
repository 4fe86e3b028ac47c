package httpx

import (
	"net/http"

	"github.com/plantflix/marketplace/internal/domain/model"
	"github.com/plantflix/marketplace/internal/service"
)

// CartHandlers provides HTTP handlers for the shopper's cart. All routes
// sit behind RequireAuth, so a session is always in the context.
type CartHandlers struct {
	Svc *service.CartService
}

// Get handles GET /api/cart.
func (h *CartHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	view, err := h.Svc.Get(r.Context(), sess.UserID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// Add handles POST /api/cart/items.
func (h *CartHandlers) Add(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.AddCartItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	item, err := h.Svc.Add(r.Context(), sess.UserID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, item)
}

// UpdateQuantity handles PATCH /api/cart/items/{id}.
func (h *CartHandlers) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.UpdateCartItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation", Err: err})
		return
	}

	item, err := h.Svc.UpdateQuantity(r.Context(), sess.UserID, r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// Remove handles DELETE /api/cart/items/{id}.
func (h *CartHandlers) Remove(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	if _, err := h.Svc.Remove(r.Context(), sess.UserID, r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart.
func (h *CartHandlers) Clear(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	if err := h.Svc.Clear(r.Context(), sess.UserID); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
