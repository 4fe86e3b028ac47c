package service

import (
	"context"

	"github.com/plantflix/marketplace/internal/core"
	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
)

// ContactServiceOptions groups dependencies for ContactService.
type ContactServiceOptions struct {
	Contacts core.ContactRepository
}

// ContactService records public contact-form submissions and lets super
// admins triage them.
type ContactService struct {
	contacts core.ContactRepository
}

// NewContactService constructs a new ContactService.
func NewContactService(opts ContactServiceOptions) *ContactService {
	return &ContactService{contacts: opts.Contacts}
}

// Submit records a message from the public contact form.
func (s *ContactService) Submit(
	ctx context.Context,
	req *model.CreateContactRequest,
) (*model.ContactSubmission, error) {
	return s.contacts.Create(ctx, req)
}

// List returns submissions for the super-admin inbox.
func (s *ContactService) List(
	ctx context.Context,
	sess domainauth.Session,
	limit, offset int,
) ([]*model.ContactSubmission, error) {
	if !sess.IsSuperAdmin() {
		return nil, apperrors.Forbidden("only super admins can view contact submissions")
	}
	return s.contacts.List(ctx, limit, offset)
}

// UpdateStatus moves a submission through triage.
func (s *ContactService) UpdateStatus(
	ctx context.Context,
	sess domainauth.Session,
	id string,
	status model.ContactStatus,
) (*model.ContactSubmission, error) {
	if !sess.IsSuperAdmin() {
		return nil, apperrors.Forbidden("only super admins can update contact submissions")
	}
	return s.contacts.UpdateStatus(ctx, id, status)
}
