package model

import (
	"errors"
	"time"
)

// DefaultCommissionRate is the marketplace cut applied when no settings row
// has been persisted yet.
const DefaultCommissionRate = 10.0

// CommissionSettings is the singleton marketplace configuration row.
// It replaces the browser-local storage the storefront once used.
type CommissionSettings struct {
	ID             string    `json:"id"              db:"id"`
	CommissionRate float64   `json:"commission_rate" db:"commission_rate"`
	UpdatedBy      string    `json:"updated_by"      db:"updated_by"`
	UpdatedAt      time.Time `json:"updated_at"      db:"updated_at"`
}

// UpdateCommissionRequest sets the marketplace commission rate (percent).
type UpdateCommissionRequest struct {
	CommissionRate float64 `json:"commission_rate"`
}

// Validate validates UpdateCommissionRequest.
func (r *UpdateCommissionRequest) Validate() error {
	if r.CommissionRate < 0 || r.CommissionRate > 100 {
		return errors.New("commission_rate must be between 0 and 100")
	}
	return nil
}

// CommissionFor returns the commission amount in minor units for a subtotal,
// rounded half away from zero.
func CommissionFor(subtotalMinor int64, rate float64) int64 {
	return int64(float64(subtotalMinor)*rate/100.0 + 0.5)
}
