package auth

// Package auth contains domain-level types for authentication, roles, and
// sessions. It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Kept in string form for easy persistence and cookies.
// Valid values are defined as constants below; the zero value means
// "not yet determined" and is never written to storage.
type Role string

const (
	RoleUser         Role = "user"
	RoleNurseryAdmin Role = "nurseryadmin"
	RoleSuperAdmin   Role = "superadmin"
)

// ParseRole normalizes a role string (case-insensitive, trimmed) and reports
// whether it names a known role. Unknown or empty input yields ("", false).
func ParseRole(value string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	if r.Valid() {
		return r, true
	}
	return "", false
}

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleNurseryAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Home returns the landing path for a role after login. Unknown roles land
// on the shopper dashboard, matching the storefront's default.
func (r Role) Home() string {
	switch r {
	case RoleSuperAdmin:
		return "/superadmin"
	case RoleNurseryAdmin:
		return "/nurseryadmin"
	default:
		return "/user/dashboard"
	}
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsSuperAdmin reports whether the session belongs to a super admin.
func (s Session) IsSuperAdmin() bool { return s.Role == RoleSuperAdmin }

// IsNurseryAdmin reports whether the session belongs to a nursery admin.
func (s Session) IsNurseryAdmin() bool { return s.Role == RoleNurseryAdmin }
