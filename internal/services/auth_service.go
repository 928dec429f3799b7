package services

import (
	"context"
	"errors"
	"strings"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/models"
)

// AuthService decides who may use the admin dashboard and API.
type AuthService struct {
	users       *database.UserRepository
	adminEmails map[string]bool
	maxAge      int
}

// NewAuthService creates a new authentication service. adminEmails come from configuration and
// are allowed in addition to the users table.
func NewAuthService(users *database.UserRepository, adminEmails []string, sessionMaxAge int) *AuthService {
	allow := make(map[string]bool, len(adminEmails))
	for _, email := range adminEmails {
		allow[strings.ToLower(strings.TrimSpace(email))] = true
	}
	return &AuthService{users: users, adminEmails: allow, maxAge: sessionMaxAge}
}

// IsAdmin reports whether email belongs to an admin.
func (s *AuthService) IsAdmin(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}
	if s.adminEmails[email] {
		return true, nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == models.UserRoleAdmin || user.Role == models.UserRoleEditor, nil
}

// ValidateSession validates a session
func (s *AuthService) ValidateSession(sessionData *models.SessionData) error {
	if sessionData == nil || !sessionData.Authenticated || sessionData.UserEmail == "" {
		return ErrInvalidSession
	}
	if sessionData.IsExpired(s.maxAge) {
		return ErrExpiredSession
	}
	return nil
}

// Error definitions
var (
	ErrInvalidSession = NewError("invalid session")
	ErrExpiredSession = NewError("session expired")
)

// Error represents a service error
type Error struct {
	message string
}

func NewError(message string) *Error {
	return &Error{message: message}
}

func (e *Error) Error() string {
	return e.message
}
