package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

func newTestCatalogService() (*CatalogService, *fakeProductRepo, *fakeNurseryRepo) {
	products := newFakeProductRepo()
	nurseries := newFakeNurseryRepo()
	svc := NewCatalogService(CatalogServiceOptions{Products: products, Nurseries: nurseries})
	return svc, products, nurseries
}

func nurseryAdminSession(userID string) domainauth.Session {
	return domainauth.Session{ID: "sess-1", UserID: userID, Role: domainauth.RoleNurseryAdmin}
}

func superAdminSession() domainauth.Session {
	return domainauth.Session{ID: "sess-admin", UserID: "admin-1", Role: domainauth.RoleSuperAdmin}
}

func TestCatalogService_CreatePinsOwnNursery(t *testing.T) {
	svc, _, nurseries := newTestCatalogService()
	ctx := context.Background()

	own := nurseries.add(&model.Nursery{OwnerID: "owner-1", Status: model.NurseryStatusApproved})
	other := nurseries.add(&model.Nursery{OwnerID: "owner-2", Status: model.NurseryStatusApproved})

	// The request names someone else's nursery; the service pins the caller's.
	product, err := svc.Create(ctx, nurseryAdminSession("owner-1"), &model.CreateProductRequest{
		NurseryID:  other.ID,
		Name:       "Snake Plant",
		PriceMinor: 29900,
		Stock:      10,
	})
	require.NoError(t, err)
	assert.Equal(t, own.ID, product.NurseryID)
}

func TestCatalogService_CreateWithoutNursery(t *testing.T) {
	svc, _, _ := newTestCatalogService()

	_, err := svc.Create(context.Background(), nurseryAdminSession("owner-1"),
		&model.CreateProductRequest{Name: "Snake Plant", PriceMinor: 29900, NurseryID: "x"})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestCatalogService_UpdateForeignProductForbidden(t *testing.T) {
	svc, products, nurseries := newTestCatalogService()
	ctx := context.Background()

	mine := nurseries.add(&model.Nursery{OwnerID: "owner-1"})
	theirs := nurseries.add(&model.Nursery{OwnerID: "owner-2"})
	_ = mine

	foreign := products.add(&model.Product{NurseryID: theirs.ID, Name: "Cactus", PriceMinor: 9900})

	name := "Renamed"
	_, err := svc.Update(ctx, nurseryAdminSession("owner-1"), foreign.ID,
		model.UpdateProductRequest{Name: &name})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestCatalogService_SuperAdminMayEditAnything(t *testing.T) {
	svc, products, nurseries := newTestCatalogService()
	ctx := context.Background()

	theirs := nurseries.add(&model.Nursery{OwnerID: "owner-2"})
	foreign := products.add(&model.Product{NurseryID: theirs.ID, Name: "Cactus", PriceMinor: 9900})

	name := "Renamed"
	updated, err := svc.Update(ctx, superAdminSession(), foreign.ID,
		model.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestCatalogService_DeleteOwnProduct(t *testing.T) {
	svc, products, nurseries := newTestCatalogService()
	ctx := context.Background()

	mine := nurseries.add(&model.Nursery{OwnerID: "owner-1"})
	product := products.add(&model.Product{NurseryID: mine.ID, Name: "Fern", PriceMinor: 19900})

	deleted, err := svc.Delete(ctx, nurseryAdminSession("owner-1"), product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
