package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plantflix/marketplace/internal/core"
	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
	"github.com/plantflix/marketplace/internal/ports"
)

// DefaultSessionTTL is how long a login stays valid without re-authenticating.
const DefaultSessionTTL = 24 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users      core.UserRepository
	Sessions   ports.SessionStore
	Hasher     ports.PasswordHasher
	SessionTTL time.Duration
	Now        func() time.Time
}

// AuthService orchestrates signup, login, and session lifecycle.
type AuthService struct {
	users      core.UserRepository
	sessions   ports.SessionStore
	hasher     ports.PasswordHasher
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users:      opts.Users,
		sessions:   opts.Sessions,
		hasher:     opts.Hasher,
		sessionTTL: ttl,
		now:        now,
	}
}

// LoginResult contains the authenticated user and their new session.
type LoginResult struct {
	User    *model.User
	Session domainauth.Session
}

// Signup registers a new shopper account and opens a session for it.
func (s *AuthService) Signup(ctx context.Context, req *model.SignupRequest) (*LoginResult, error) {
	if req == nil {
		return nil, apperrors.Validation("signup request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req, hash)
	if err != nil {
		return nil, err
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Session: session}, nil
}

// Login verifies credentials and opens a session. Invalid email and invalid
// password produce the same error so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*LoginResult, error) {
	if req == nil {
		return nil, apperrors.Validation("login request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if compareErr := s.hasher.Compare(user.PasswordHash, req.Password); compareErr != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Session: session}, nil
}

// Logout deletes the session. Deleting an unknown session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// GetSession loads a live session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (domainauth.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

func (s *AuthService) openSession(ctx context.Context, user *model.User) (domainauth.Session, error) {
	session := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}
