package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"lawFirmWebsite/internal/config"
	"lawFirmWebsite/internal/models"
)

// LoginPage is shown when Google login is unavailable or was refused.
type LoginPage struct {
	Message string
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.Config.OAuthEnabled() {
		s.render(w, r, http.StatusOK, "login", "Admin login", LoginPage{
			Message: "Google login is not configured on this server. Use the admin console with an API token instead.",
		})
		return
	}

	state, err := config.GenerateSecureToken(16)
	if err != nil {
		s.Logger.WithError(err).Error("Failed to generate OAuth state")
		http.Error(w, "Failed to generate state", http.StatusInternalServerError)
		return
	}

	session, err := s.SessionStore.Get(r, sessionName)
	if err != nil {
		// A cookie signed with an old secret is not an error worth surfacing; start fresh.
		session, err = s.SessionStore.New(r, sessionName)
		if err != nil {
			s.Logger.WithError(err).Error("Failed to create session")
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
	}

	for k := range session.Values {
		delete(session.Values, k)
	}
	session.Values["state"] = state

	if err := session.Save(r, w); err != nil {
		s.Logger.WithError(err).Error("Failed to save session")
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	url := s.OAuthConfig.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, err := s.SessionStore.Get(r, sessionName)
	if err != nil {
		s.Logger.WithError(err).Debug("Failed to read session during logout")
	}

	if session != nil {
		for k := range session.Values {
			delete(session.Values, k)
		}
		session.Options.MaxAge = -1
		session.Save(r, w)
	}

	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	session, err := s.SessionStore.Get(r, sessionName)
	if err != nil {
		s.Logger.WithError(err).Warn("Failed to get session in OAuth callback")
		http.Error(w, "Session error - please try logging in again", http.StatusBadRequest)
		return
	}

	state, ok := session.Values["state"].(string)
	if !ok || state == "" || state != r.URL.Query().Get("state") {
		s.Logger.Warn("OAuth state mismatch")
		http.Error(w, "Invalid state parameter - please try logging in again", http.StatusBadRequest)
		return
	}
	delete(session.Values, "state")

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := s.OAuthConfig.Exchange(r.Context(), code)
	if err != nil {
		s.Logger.WithError(err).Error("Failed to exchange OAuth code")
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	email, err := s.FetchEmail(r.Context(), s.OAuthConfig, token)
	if err != nil {
		s.Logger.WithError(err).Error("Failed to get user info")
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}

	isAdmin, err := s.Auth.IsAdmin(r.Context(), email)
	if err != nil {
		s.Logger.WithError(err).Error("Failed to check admin status")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !isAdmin {
		s.Logger.WithField("email", email).Warn("Login refused for non-admin account")
		session.Save(r, w)
		s.render(w, r, http.StatusForbidden, "login", "Admin login", LoginPage{
			Message: "The account " + email + " is not allowed to manage this site.",
		})
		return
	}

	csrfToken, err := config.GenerateCSRFToken()
	if err != nil {
		s.Logger.WithError(err).Error("Failed to generate CSRF token")
		http.Error(w, "Security token error", http.StatusInternalServerError)
		return
	}

	sessionData := models.SessionData{
		UserEmail:     email,
		Authenticated: true,
		CSRFToken:     csrfToken,
		CreatedAt:     time.Now(),
	}
	sessionDataJSON, err := json.Marshal(sessionData)
	if err != nil {
		http.Error(w, "Session processing error", http.StatusInternalServerError)
		return
	}

	session.Values["session_data"] = string(sessionDataJSON)
	if err := session.Save(r, w); err != nil {
		s.Logger.WithError(err).Error("Failed to save session to cookie")
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	s.Logger.WithField("email", email).Info("Admin logged in")
	http.Redirect(w, r, "/admin", http.StatusTemporaryRedirect)
}

// fetchGoogleEmail asks Google's userinfo endpoint who owns token.
func fetchGoogleEmail(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (string, error) {
	client := cfg.Client(ctx, token)
	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", err
	}
	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return info.Email, nil
}
