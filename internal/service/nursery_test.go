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

func newTestNurseryService() (*NurseryService, *fakeNurseryRepo, *fakeUserRepo) {
	nurseries := newFakeNurseryRepo()
	users := newFakeUserRepo()
	svc := NewNurseryService(NurseryServiceOptions{Nurseries: nurseries, Users: users})
	return svc, nurseries, users
}

func TestNurseryService_RegisterPromotesOwner(t *testing.T) {
	svc, _, users := newTestNurseryService()
	ctx := context.Background()

	owner, err := users.Create(ctx, &model.SignupRequest{
		Name: "Rosa", Email: "rosa@example.com", Password: "long-enough-password",
	}, "hash")
	require.NoError(t, err)

	sess := domainauth.Session{UserID: owner.ID, Role: domainauth.RoleUser}
	nursery, err := svc.Register(ctx, sess, &model.CreateNurseryRequest{
		Name:    "Green Thumb",
		Address: "12 Garden Lane",
	})
	require.NoError(t, err)
	assert.Equal(t, model.NurseryStatusPending, nursery.Status)

	promoted, err := users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleNurseryAdmin, promoted.Role)
}

func TestNurseryService_RegisterSecondNurseryConflicts(t *testing.T) {
	svc, _, users := newTestNurseryService()
	ctx := context.Background()

	owner, err := users.Create(ctx, &model.SignupRequest{
		Name: "Rosa", Email: "rosa@example.com", Password: "long-enough-password",
	}, "hash")
	require.NoError(t, err)

	sess := domainauth.Session{UserID: owner.ID, Role: domainauth.RoleUser}
	req := &model.CreateNurseryRequest{Name: "Green Thumb", Address: "12 Garden Lane"}
	_, err = svc.Register(ctx, sess, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, sess, req)
	assert.True(t, apperrors.IsConflict(err))
}

func TestNurseryService_ListHidesUnapprovedFromShoppers(t *testing.T) {
	svc, nurseries, _ := newTestNurseryService()
	ctx := context.Background()

	nurseries.add(&model.Nursery{OwnerID: "o1", Status: model.NurseryStatusApproved})
	nurseries.add(&model.Nursery{OwnerID: "o2", Status: model.NurseryStatusPending})

	shopper := domainauth.Session{UserID: "u1", Role: domainauth.RoleUser}
	visible, err := svc.List(ctx, shopper, 50, 0)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := svc.List(ctx, superAdminSession(), 50, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNurseryService_OwnerCannotChangeStatus(t *testing.T) {
	svc, nurseries, _ := newTestNurseryService()
	ctx := context.Background()

	mine := nurseries.add(&model.Nursery{OwnerID: "owner-1", Status: model.NurseryStatusPending})

	approved := model.NurseryStatusApproved
	_, err := svc.Update(ctx, nurseryAdminSession("owner-1"), mine.ID,
		model.UpdateNurseryRequest{Status: &approved})
	assert.True(t, apperrors.IsForbidden(err))

	updated, err := svc.Update(ctx, superAdminSession(), mine.ID,
		model.UpdateNurseryRequest{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, model.NurseryStatusApproved, updated.Status)
}

func TestNurseryService_DeleteRequiresSuperAdmin(t *testing.T) {
	svc, nurseries, _ := newTestNurseryService()
	ctx := context.Background()

	mine := nurseries.add(&model.Nursery{OwnerID: "owner-1"})

	_, err := svc.Delete(ctx, nurseryAdminSession("owner-1"), mine.ID)
	assert.True(t, apperrors.IsForbidden(err))

	deleted, err := svc.Delete(ctx, superAdminSession(), mine.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
