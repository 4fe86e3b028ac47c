package service

import (
	"context"

	"github.com/plantflix/marketplace/internal/core"
	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

// SettingsServiceOptions groups dependencies for SettingsService.
type SettingsServiceOptions struct {
	Settings core.SettingsRepository
}

// SettingsService exposes the marketplace commission configuration.
type SettingsService struct {
	settings core.SettingsRepository
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(opts SettingsServiceOptions) *SettingsService {
	return &SettingsService{settings: opts.Settings}
}

// Get returns the current commission settings.
func (s *SettingsService) Get(ctx context.Context) (*model.CommissionSettings, error) {
	return s.settings.Get(ctx)
}

// Update changes the commission rate. Super admin only. Existing orders keep
// their snapshotted rate.
func (s *SettingsService) Update(
	ctx context.Context,
	sess domainauth.Session,
	req model.UpdateCommissionRequest,
) (*model.CommissionSettings, error) {
	if !sess.IsSuperAdmin() {
		return nil, apperrors.Forbidden("only super admins can change commission settings")
	}
	return s.settings.Update(ctx, req, sess.UserID)
}
