package service

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/plantflix/marketplace/internal/core"
	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
	"github.com/plantflix/marketplace/internal/ports"
)

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	Products  core.ProductRepository
	Nurseries core.NurseryRepository
	Images    ports.ObjectStore
}

// CatalogService manages the plant catalog. Writes are restricted to the
// owning nursery admin; super admins may edit anything.
type CatalogService struct {
	products  core.ProductRepository
	nurseries core.NurseryRepository
	images    ports.ObjectStore
}

// NewCatalogService constructs a new CatalogService.
func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	return &CatalogService{
		products:  opts.Products,
		nurseries: opts.Nurseries,
		images:    opts.Images,
	}
}

// List returns catalog products. Callers without a session only see
// available listings.
func (s *CatalogService) List(
	ctx context.Context,
	opts model.ProductsListOptions,
) ([]*model.Product, error) {
	return s.products.List(ctx, opts)
}

// Get returns one product by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create adds a product under the caller's nursery. Nursery admins may only
// list products for their own storefront.
func (s *CatalogService) Create(
	ctx context.Context,
	sess domainauth.Session,
	req *model.CreateProductRequest,
) (*model.Product, error) {
	if req == nil {
		return nil, apperrors.Validation("create product request is required")
	}

	if !sess.IsSuperAdmin() {
		nursery, err := s.nurseries.GetByOwner(ctx, sess.UserID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Forbidden("no nursery registered for this account")
			}
			return nil, err
		}
		// Ignore whatever nursery the request names and pin to the caller's.
		req.NurseryID = nursery.ID
	}

	return s.products.Create(ctx, req)
}

// Update edits a product after an ownership check.
func (s *CatalogService) Update(
	ctx context.Context,
	sess domainauth.Session,
	productID string,
	req model.UpdateProductRequest,
) (*model.Product, error) {
	if err := s.authorizeProductWrite(ctx, sess, productID); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, productID, req)
}

// Delete removes a product after an ownership check.
func (s *CatalogService) Delete(
	ctx context.Context,
	sess domainauth.Session,
	productID string,
) (bool, error) {
	if err := s.authorizeProductWrite(ctx, sess, productID); err != nil {
		return false, err
	}
	return s.products.Delete(ctx, productID)
}

// UploadImageInput groups parameters for UploadImage.
type UploadImageInput struct {
	ProductID   string
	FileName    string
	Content     []byte
	ContentType string
}

// UploadImage stores a product photo in the object store and points the
// product at the resulting URL.
func (s *CatalogService) UploadImage(
	ctx context.Context,
	sess domainauth.Session,
	in UploadImageInput,
) (*model.Product, error) {
	if len(in.Content) == 0 {
		return nil, apperrors.Validation("image content is required")
	}
	if err := s.authorizeProductWrite(ctx, sess, in.ProductID); err != nil {
		return nil, err
	}

	key := "products/" + in.ProductID + "/" + uuid.NewString() + path.Ext(in.FileName)
	url, err := s.images.Put(ctx, ports.PutObjectInput{
		Key:         key,
		Content:     in.Content,
		ContentType: in.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("store product image: %w", err)
	}

	return s.products.Update(ctx, in.ProductID, model.UpdateProductRequest{ImageURL: &url})
}

// authorizeProductWrite verifies the caller may modify the product: super
// admins always may, nursery admins only for products of their own nursery.
func (s *CatalogService) authorizeProductWrite(
	ctx context.Context,
	sess domainauth.Session,
	productID string,
) error {
	if sess.IsSuperAdmin() {
		return nil
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	nursery, err := s.nurseries.GetByOwner(ctx, sess.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.Forbidden("no nursery registered for this account")
		}
		return err
	}
	if product.NurseryID != nursery.ID {
		return apperrors.Forbidden("product belongs to a different nursery")
	}
	return nil
}
