package httpx

import (
	"errors"
	"net/http"

	"github.com/plantflix/marketplace/internal/domain/model"
	"github.com/plantflix/marketplace/internal/service"
)

// ContactHandlers provides HTTP handlers for the public contact form and
// the super-admin inbox.
type ContactHandlers struct {
	Svc *service.ContactService
}

// Submit handles POST /api/contact. No session required.
func (h *ContactHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	submission, err := h.Svc.Submit(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, submission)
}

// List handles GET /api/contact.
func (h *ContactHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())
	limit, offset := ParseLimitOffset(r, DefaultListLimit, MaxListLimit)

	submissions, err := h.Svc.List(r.Context(), sess, limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, submissions)
}

// UpdateStatus handles PATCH /api/contact/{id}/status.
func (h *ContactHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req struct {
		Status string `json:"status"`
	}
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}
	status, ok := model.ParseContactStatus(req.Status)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation",
			Err:     errors.New("unknown contact status"),
			Field:   "status",
		})
		return
	}

	submission, err := h.Svc.UpdateStatus(r.Context(), sess, r.PathValue("id"), status)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, submission)
}
