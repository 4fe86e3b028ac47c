package httpx

import (
	"context"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
	"github.com/plantflix/marketplace/internal/service"
)

// fakeAuthService is an in-memory AuthServiceInterface for handler and
// middleware tests.
type fakeAuthService struct {
	sessions  map[string]domainauth.Session
	signupFn  func(req *model.SignupRequest) (*service.LoginResult, error)
	loginFn   func(req *model.LoginRequest) (*service.LoginResult, error)
	loggedOut []string
}

var _ AuthServiceInterface = (*fakeAuthService)(nil)

func (f *fakeAuthService) Signup(_ context.Context, req *model.SignupRequest) (*service.LoginResult, error) {
	if f.signupFn != nil {
		return f.signupFn(req)
	}
	return nil, apperrors.Internal("signup not configured")
}

func (f *fakeAuthService) Login(_ context.Context, req *model.LoginRequest) (*service.LoginResult, error) {
	if f.loginFn != nil {
		return f.loginFn(req)
	}
	return nil, apperrors.Unauthorized("invalid email or password")
}

func (f *fakeAuthService) Logout(_ context.Context, sessionID string) error {
	f.loggedOut = append(f.loggedOut, sessionID)
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeAuthService) GetSession(_ context.Context, sessionID string) (domainauth.Session, error) {
	sess, ok := f.sessions[sessionID]
	if !ok {
		return domainauth.Session{}, apperrors.Unauthorized("session not found")
	}
	return sess, nil
}
