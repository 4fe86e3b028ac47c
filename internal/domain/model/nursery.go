package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxNurseryNameLen = 255

// NurseryStatus is the marketplace approval state for a nursery.
type NurseryStatus string

const (
	NurseryStatusPending  NurseryStatus = "pending"
	NurseryStatusApproved NurseryStatus = "approved"
	NurseryStatusDisabled NurseryStatus = "disabled"
)

// Valid reports whether the nursery status is supported.
func (s NurseryStatus) Valid() bool {
	switch s {
	case NurseryStatusPending, NurseryStatusApproved, NurseryStatusDisabled:
		return true
	default:
		return false
	}
}

// Nursery is a seller storefront. Each owner account holds at most one.
type Nursery struct {
	ID          string        `json:"id"          db:"id"`
	OwnerID     string        `json:"owner_id"    db:"owner_id"`
	Name        string        `json:"name"        db:"name"`
	Description string        `json:"description" db:"description"`
	Address     string        `json:"address"     db:"address"`
	Phone       string        `json:"phone"       db:"phone"`
	Status      NurseryStatus `json:"status"      db:"status"`
	CreatedAt   time.Time     `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"  db:"updated_at"`
}

// CreateNurseryRequest represents the nursery setup form.
type CreateNurseryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address"`
	Phone       string `json:"phone,omitempty"`
}

// Validate validates CreateNurseryRequest.
func (r *CreateNurseryRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNurseryNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Address) == "" {
		return errors.New("address is required and cannot be empty")
	}
	return nil
}

// UpdateNurseryRequest represents parameters to update a Nursery.
// Status changes are restricted to super admins at the service layer.
type UpdateNurseryRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Address     *string        `json:"address,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Status      *NurseryStatus `json:"status,omitempty"`
}

// Validate validates UpdateNurseryRequest.
func (r *UpdateNurseryRequest) Validate() error {
	if r.Name == nil && r.Description == nil && r.Address == nil && r.Phone == nil && r.Status == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status must be one of: pending, approved, disabled")
	}
	return nil
}
