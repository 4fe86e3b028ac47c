package httpx

import (
	"errors"
	"io"
	"net/http"

	"github.com/plantflix/marketplace/internal/domain/model"
	"github.com/plantflix/marketplace/internal/service"
)

// ProductHandlers provides HTTP handlers for the plant catalog.
type ProductHandlers struct {
	Svc *service.CatalogService
}

// List handles GET /api/products. Browsing is public; shoppers only see
// available listings unless available=all is requested by an admin surface.
func (h *ProductHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, DefaultListLimit, MaxListLimit)
	opts := model.ProductsListOptions{
		Limit:         limit,
		Offset:        offset,
		Q:             optionalQuery(r, "q"),
		Category:      optionalQuery(r, "category"),
		NurseryID:     optionalQuery(r, "nursery_id"),
		OnlyAvailable: r.URL.Query().Get("available") != "all",
	}
	if _, ok := GetSessionFromContext(r.Context()); !ok {
		opts.OnlyAvailable = true
	}

	products, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandlers) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products.
func (h *ProductHandlers) Create(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.CreateProductRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	product, err := h.Svc.Create(r.Context(), sess, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, product)
}

// Update handles PATCH /api/products/{id}.
func (h *ProductHandlers) Update(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	var req model.UpdateProductRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	product, err := h.Svc.Update(r.Context(), sess, r.PathValue("id"), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	if _, err := h.Svc.Delete(r.Context(), sess, r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /api/products/{id}/image as a multipart form
// with an "image" file field.
func (h *ProductHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	sess, _ := GetSessionFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_body",
			Err:     errors.New(`multipart "image" file field is required`),
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	product, err := h.Svc.UploadImage(r.Context(), sess, service.UploadImageInput{
		ProductID:   r.PathValue("id"),
		FileName:    header.Filename,
		Content:     content,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}
