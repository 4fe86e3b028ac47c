package model

import (
	"errors"
	"strings"
	"time"
)

// ContactStatus tracks triage of a contact-form submission.
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusResolved ContactStatus = "resolved"
)

// Valid reports whether the contact status is supported.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusResolved:
		return true
	default:
		return false
	}
}

// ParseContactStatus normalizes a status string and reports whether it is
// supported.
func ParseContactStatus(value string) (ContactStatus, bool) {
	s := ContactStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID        string        `json:"id"         db:"id"`
	Name      string        `json:"name"       db:"name"`
	Email     string        `json:"email"      db:"email"`
	Subject   string        `json:"subject"    db:"subject"`
	Message   string        `json:"message"    db:"message"`
	Status    ContactStatus `json:"status"     db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// CreateContactRequest represents the public contact form.
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate validates CreateContactRequest.
func (r *CreateContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required and cannot be empty")
	}
	if strings.TrimSpace(r.Message) == "" {
		return errors.New("message is required and cannot be empty")
	}
	return nil
}
