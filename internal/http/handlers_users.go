package httpx

import (
	"net/http"

	"github.com/plantflix/marketplace/internal/domain/model"
	"github.com/plantflix/marketplace/internal/service"
)

// UserHandlers provides HTTP handlers for profiles and user administration.
type UserHandlers struct {
	Svc *service.UserService
}

// Profile handles GET /api/users/me.
func (h *UserHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	user, err := h.Svc.Profile(r.Context(), sess)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PATCH /api/users/me.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.UpdateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	user, err := h.Svc.UpdateProfile(r.Context(), sess, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// List handles GET /api/users for the super-admin console.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	limit, offset := ParseLimitOffset(r, DefaultListLimit, MaxListLimit)
	users, err := h.Svc.List(r.Context(), sess, model.UsersListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      optionalQuery(r, "q"),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// UpdateRole handles PATCH /api/users/{id}/role.
func (h *UserHandlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.UpdateUserRoleRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	user, err := h.Svc.UpdateRole(r.Context(), sess, r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	if _, err := h.Svc.Delete(r.Context(), sess, r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
