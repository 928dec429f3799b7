package utils

import (
	"context"
	"net/http"
)

type contextKey string

const (
	UserEmailKey     contextKey = "user_email"
	CSRFTokenKey     contextKey = "csrf_token"
	AuthenticatedKey contextKey = "authenticated"
	AuthMethodKey    contextKey = "auth_method"
)

const (
	AuthMethodSession = "session"
	AuthMethodToken   = "token"
)

// WithAdmin returns ctx carrying an authenticated admin identity.
func WithAdmin(ctx context.Context, email, csrfToken, method string) context.Context {
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, CSRFTokenKey, csrfToken)
	ctx = context.WithValue(ctx, AuthenticatedKey, true)
	return context.WithValue(ctx, AuthMethodKey, method)
}

// GetUserEmail extracts user email from request context
func GetUserEmail(r *http.Request) (string, bool) {
	userEmail, ok := r.Context().Value(UserEmailKey).(string)
	return userEmail, ok && userEmail != ""
}

// GetCSRFToken extracts CSRF token from request context
func GetCSRFToken(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(CSRFTokenKey).(string)
	return token, ok && token != ""
}

// IsAuthenticated checks if user is authenticated
func IsAuthenticated(r *http.Request) bool {
	authenticated, ok := r.Context().Value(AuthenticatedKey).(bool)
	return ok && authenticated
}

func GetAuthMethod(r *http.Request) string {
	method, _ := r.Context().Value(AuthMethodKey).(string)
	return method
}
