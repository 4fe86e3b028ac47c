package model

import (
	"errors"
	"strings"
	"time"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
)

// User is a marketplace account profile row. PasswordHash is a bcrypt hash
// and is never serialized.
type User struct {
	ID           string          `json:"id"         db:"id"`
	Name         string          `json:"name"       db:"name"`
	Email        string          `json:"email"      db:"email"`
	Phone        string          `json:"phone"      db:"phone"`
	Address      string          `json:"address"    db:"address"`
	Role         domainauth.Role `json:"role"       db:"role"`
	PasswordHash string          `json:"-"          db:"password_hash"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// SignupRequest represents the signup form. Role is intentionally absent:
// every account starts as a shopper and is promoted by a super admin.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

const minPasswordLen = 8

// Validate validates SignupRequest.
func (r *SignupRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required and cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return errors.New("email must be a valid address")
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// LoginRequest represents the login form.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates LoginRequest.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required and cannot be empty")
	}
	if r.Password == "" {
		return errors.New("password is required and cannot be empty")
	}
	return nil
}

// UpdateProfileRequest updates a user's own profile fields.
type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Validate validates UpdateProfileRequest.
func (r *UpdateProfileRequest) Validate() error {
	if r.Name == nil && r.Phone == nil && r.Address == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	return nil
}

// UpdateUserRoleRequest is the super-admin promotion/demotion action.
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

// ParsedRole validates and returns the closed-enum role.
func (r *UpdateUserRoleRequest) ParsedRole() (domainauth.Role, error) {
	role, ok := domainauth.ParseRole(r.Role)
	if !ok {
		return "", errors.New("role must be one of: user, nurseryadmin, superadmin")
	}
	return role, nil
}

// UsersListOptions controls paging for the super-admin user list.
type UsersListOptions struct {
	Limit  int
	Offset int
	Q      *string // substring match on name or email (ILIKE)
}
