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

func TestUserService_UpdateRoleRequiresSuperAdmin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(UserServiceOptions{Users: users})

	_, err := svc.UpdateRole(context.Background(),
		domainauth.Session{UserID: "u1", Role: domainauth.RoleNurseryAdmin},
		"u2", model.UpdateUserRoleRequest{Role: "superadmin"})
	assert.True(t, apperrors.IsForbidden(err))
}

func TestUserService_UpdateRoleSelfBlocked(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(UserServiceOptions{Users: users})

	_, err := svc.UpdateRole(context.Background(),
		domainauth.Session{UserID: "admin-1", Role: domainauth.RoleSuperAdmin},
		"admin-1", model.UpdateUserRoleRequest{Role: "user"})
	assert.True(t, apperrors.IsConflict(err))
}

func TestUserService_UpdateRolePromotes(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(UserServiceOptions{Users: users})
	ctx := context.Background()

	created, err := users.Create(ctx, &model.SignupRequest{
		Name: "Rosa", Email: "rosa@example.com", Password: "long-enough-password",
	}, "hash")
	require.NoError(t, err)

	updated, err := svc.UpdateRole(ctx, superAdminSession(), created.ID,
		model.UpdateUserRoleRequest{Role: "NurseryAdmin"})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleNurseryAdmin, updated.Role)
}

func TestUserService_UpdateRoleInvalidValue(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(UserServiceOptions{Users: users})

	_, err := svc.UpdateRole(context.Background(), superAdminSession(), "u2",
		model.UpdateUserRoleRequest{Role: "admin"})
	require.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "role", apperrors.GetField(err))
}

func TestUserService_DeleteSelfBlocked(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(UserServiceOptions{Users: users})

	sess := superAdminSession()
	_, err := svc.Delete(context.Background(), sess, sess.UserID)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUserService_ListRequiresSuperAdmin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(UserServiceOptions{Users: users})

	_, err := svc.List(context.Background(),
		domainauth.Session{UserID: "u1", Role: domainauth.RoleUser}, model.UsersListOptions{})
	assert.True(t, apperrors.IsForbidden(err))
}
