package service

import (
	"context"

	"github.com/plantflix/marketplace/internal/core"
	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

// NurseryServiceOptions groups dependencies for NurseryService.
type NurseryServiceOptions struct {
	Nurseries core.NurseryRepository
	Users     core.UserRepository
}

// NurseryService manages seller storefronts.
type NurseryService struct {
	nurseries core.NurseryRepository
	users     core.UserRepository
}

// NewNurseryService constructs a new NurseryService.
func NewNurseryService(opts NurseryServiceOptions) *NurseryService {
	return &NurseryService{nurseries: opts.Nurseries, users: opts.Users}
}

// Register creates a nursery for the caller and promotes the account to
// nursery admin. The storefront stays pending until a super admin approves it.
func (s *NurseryService) Register(
	ctx context.Context,
	sess domainauth.Session,
	req *model.CreateNurseryRequest,
) (*model.Nursery, error) {
	nursery, err := s.nurseries.Create(ctx, sess.UserID, req)
	if err != nil {
		return nil, err
	}

	if !sess.IsSuperAdmin() {
		if _, roleErr := s.users.UpdateRole(ctx, sess.UserID, domainauth.RoleNurseryAdmin); roleErr != nil {
			return nil, roleErr
		}
	}
	return nursery, nil
}

// Get returns one nursery by ID.
func (s *NurseryService) Get(ctx context.Context, id string) (*model.Nursery, error) {
	return s.nurseries.GetByID(ctx, id)
}

// GetOwn returns the caller's nursery.
func (s *NurseryService) GetOwn(ctx context.Context, sess domainauth.Session) (*model.Nursery, error) {
	return s.nurseries.GetByOwner(ctx, sess.UserID)
}

// List returns nurseries. Non-admin callers only see approved storefronts.
func (s *NurseryService) List(
	ctx context.Context,
	sess domainauth.Session,
	limit, offset int,
) ([]*model.Nursery, error) {
	onlyApproved := !sess.IsSuperAdmin()
	return s.nurseries.List(ctx, limit, offset, onlyApproved)
}

// Update edits a nursery. Owners may edit their own profile fields; only
// super admins may change approval status or other people's storefronts.
func (s *NurseryService) Update(
	ctx context.Context,
	sess domainauth.Session,
	id string,
	req model.UpdateNurseryRequest,
) (*model.Nursery, error) {
	if !sess.IsSuperAdmin() {
		nursery, err := s.nurseries.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if nursery.OwnerID != sess.UserID {
			return nil, apperrors.Forbidden("nursery belongs to a different account")
		}
		if req.Status != nil {
			return nil, apperrors.Forbidden("only super admins can change nursery status")
		}
	}
	return s.nurseries.Update(ctx, id, req)
}

// Delete removes a nursery. Super admin only.
func (s *NurseryService) Delete(
	ctx context.Context,
	sess domainauth.Session,
	id string,
) (bool, error) {
	if !sess.IsSuperAdmin() {
		return false, apperrors.Forbidden("only super admins can delete nurseries")
	}
	return s.nurseries.Delete(ctx, id)
}
