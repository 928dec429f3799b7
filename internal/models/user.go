package models

import (
	"strings"
	"time"

	"lawFirmWebsite/internal/validation"
)

const (
	UserRoleAdmin  = "admin"
	UserRoleEditor = "editor"
)

// User is an account allowed into the admin dashboard.
type User struct {
	Meta
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

func (u *User) Prepare() error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = validation.SanitizeInput(u.Name)
	if u.Role == "" {
		u.Role = UserRoleAdmin
	}

	return validation.NewValidator().
		ValidateRequired(u.Email, "Email").
		ValidateEmail(u.Email, "Email").
		ValidateOneOf(u.Role, "Role", UserRoleAdmin, UserRoleEditor).
		Err()
}

// SessionData is stored JSON-encoded in the admin session cookie
type SessionData struct {
	UserEmail     string    `json:"user_email"`
	Authenticated bool      `json:"authenticated"`
	CSRFToken     string    `json:"csrf_token"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsExpired checks if the session has outlived maxAge seconds
func (s *SessionData) IsExpired(maxAge int) bool {
	return time.Since(s.CreatedAt) > time.Duration(maxAge)*time.Second
}
