package service

import (
	"context"

	"github.com/plantflix/marketplace/internal/core"
	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users core.UserRepository
}

// UserService handles profile management and the super-admin account views.
type UserService struct {
	users core.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.Users}
}

// Profile returns the caller's account row.
func (s *UserService) Profile(ctx context.Context, sess domainauth.Session) (*model.User, error) {
	return s.users.GetByID(ctx, sess.UserID)
}

// UpdateProfile edits the caller's own profile fields.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	sess domainauth.Session,
	req model.UpdateProfileRequest,
) (*model.User, error) {
	return s.users.UpdateProfile(ctx, sess.UserID, req)
}

// List returns accounts for the super-admin user directory.
func (s *UserService) List(
	ctx context.Context,
	sess domainauth.Session,
	opts model.UsersListOptions,
) ([]*model.User, error) {
	if !sess.IsSuperAdmin() {
		return nil, apperrors.Forbidden("only super admins can list users")
	}
	return s.users.List(ctx, opts)
}

// UpdateRole promotes or demotes an account. Super admin only; admins cannot
// demote themselves, which would lock the last admin out.
func (s *UserService) UpdateRole(
	ctx context.Context,
	sess domainauth.Session,
	userID string,
	req model.UpdateUserRoleRequest,
) (*model.User, error) {
	if !sess.IsSuperAdmin() {
		return nil, apperrors.Forbidden("only super admins can change roles")
	}
	if userID == sess.UserID {
		return nil, apperrors.Conflict("cannot change your own role")
	}
	role, err := req.ParsedRole()
	if err != nil {
		return nil, apperrors.ValidationField("role", err.Error())
	}
	return s.users.UpdateRole(ctx, userID, role)
}

// Delete removes an account. Super admin only, and not their own.
func (s *UserService) Delete(
	ctx context.Context,
	sess domainauth.Session,
	userID string,
) (bool, error) {
	if !sess.IsSuperAdmin() {
		return false, apperrors.Forbidden("only super admins can delete users")
	}
	if userID == sess.UserID {
		return false, apperrors.Conflict("cannot delete your own account")
	}
	return s.users.Delete(ctx, userID)
}
