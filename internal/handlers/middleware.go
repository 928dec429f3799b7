package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/utils"
)

func (s *Server) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)

		s.Logger.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
			"status_code": wrapper.statusCode,
			"remote_addr": r.RemoteAddr,
			"user_agent":  r.UserAgent(),
		}).Info("HTTP request completed")
	})
}

// responseWriterWrapper wraps http.ResponseWriter to capture status code
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func (s *Server) RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.Logger.WithFields(map[string]interface{}{
					"method":      r.Method,
					"path":        r.URL.Path,
					"panic":       fmt.Sprintf("%v", err),
					"remote_addr": r.RemoteAddr,
				}).Error("Panic recovered in HTTP handler")

				if isAPIRequest(r) {
					utils.InternalServerError(w, "Internal server error")
					return
				}
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware guards admin pages: visitors without a valid session are sent to /login.
func (s *Server) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.loadSession(w, r)
		if err != nil {
			s.Logger.WithError(err).WithField("path", r.URL.Path).Debug("No admin session, redirecting to login")
			http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
			return
		}

		ctx := utils.WithAdmin(r.Context(), data.UserEmail, data.CSRFToken, utils.AuthMethodSession)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// AdminAPIMiddleware guards the admin REST API. A request is accepted with either
// "Authorization: Bearer <ADMIN_API_TOKEN>" or an admin session cookie; session requests that
// change state must also echo the session's CSRF token in X-CSRF-Token.
func (s *Server) AdminAPIMiddleware(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			expected := s.Config.AdminAPIToken
			if expected == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
				s.Logger.WithFields(map[string]interface{}{
					"path":        r.URL.Path,
					"remote_addr": r.RemoteAddr,
				}).Warn("Rejected admin API token")
				utils.RespondWithError(w, http.StatusUnauthorized, "Invalid API token")
				return
			}
			ctx := utils.WithAdmin(r.Context(), "api-token", "", utils.AuthMethodToken)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		data, err := s.loadSession(w, r)
		if err != nil {
			utils.AuthenticationError(w)
			return
		}

		if isStateChanging(r.Method) {
			provided := r.Header.Get("X-CSRF-Token")
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(data.CSRFToken)) != 1 {
				s.Logger.WithFields(map[string]interface{}{
					"path":  r.URL.Path,
					"email": data.UserEmail,
				}).Warn("CSRF token mismatch")
				utils.AuthorizationError(w, "CSRF token mismatch")
				return
			}
		}

		ctx := utils.WithAdmin(r.Context(), data.UserEmail, data.CSRFToken, utils.AuthMethodSession)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// invalidateOnSuccess drops the cached home page after a successful write.
func (s *Server) invalidateOnSuccess(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wrapper := &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapper, r)
		if wrapper.statusCode < 300 {
			s.Site.Invalidate()
		}
	}
}

// loadSession reads and validates the admin session cookie. Corrupt or expired session data
// is cleared from the cookie.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*models.SessionData, error) {
	session, err := s.SessionStore.Get(r, sessionName)
	if err != nil {
		return nil, err
	}

	raw, ok := session.Values["session_data"].(string)
	if !ok || raw == "" {
		return nil, errors.New("no session data")
	}

	var data models.SessionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		delete(session.Values, "session_data")
		session.Save(r, w)
		return nil, fmt.Errorf("corrupt session data: %w", err)
	}

	if err := s.Auth.ValidateSession(&data); err != nil {
		delete(session.Values, "session_data")
		session.Save(r, w)
		return nil, err
	}
	return &data, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func isStateChanging(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodDelete || method == http.MethodPatch
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}
	s.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
