// Package handlers serves the public site, the admin REST API and the admin login flow.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"lawFirmWebsite/internal/config"
	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/logging"
	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/services"
	"lawFirmWebsite/internal/uploads"
	"lawFirmWebsite/internal/utils"
)

const (
	sessionName    = "lawsite-session"
	homePageTTL    = 5 * time.Minute
	maxJSONBody    = 1 << 20
	multipartSlack = 1 << 20
)

// EmailFetcher resolves the Google account email behind an OAuth token.
type EmailFetcher func(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (string, error)

type Server struct {
	Config       *config.Config
	Logger       *logging.Logger
	Store        *database.Store
	Uploads      uploads.Store
	Site         *services.SiteService
	Auth         *services.AuthService
	SessionStore *sessions.CookieStore
	OAuthConfig  *oauth2.Config
	Templates    *TemplateCache
	FetchEmail   EmailFetcher

	homeCache     *utils.Cache[*services.HomePage]
	publicLimiter *RateLimiter
	authLimiter   *RateLimiter
}

func NewServer(cfg *config.Config, logger *logging.Logger, store *database.Store, uploadStore uploads.Store) *Server {
	homeCache := utils.NewCache[*services.HomePage](homePageTTL)

	return &Server{
		Config:        cfg,
		Logger:        logger,
		Store:         store,
		Uploads:       uploadStore,
		Site:          services.NewSiteService(store, homeCache, cfg.CarouselInterval, logger),
		Auth:          services.NewAuthService(store.Users, cfg.AdminEmails, cfg.SessionMaxAge),
		SessionStore:  NewSessionStore(cfg),
		OAuthConfig:   NewOAuthConfig(cfg),
		Templates:     NewTemplateCache(),
		FetchEmail:    fetchGoogleEmail,
		homeCache:     homeCache,
		publicLimiter: NewRateLimiter(10, 5),
		authLimiter:   NewRateLimiter(5, 10),
	}
}

// NewSessionStore builds the cookie store holding admin sessions.
func NewSessionStore(cfg *config.Config) *sessions.CookieStore {
	store := sessions.NewCookieStore(cfg.SessionSecret)
	store.MaxAge(cfg.SessionMaxAge)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode, // Lax so the OAuth redirect carries the cookie
	}
	return store
}

func NewOAuthConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
		Endpoint:     google.Endpoint,
	}
}

// StartBackground runs cache and rate limiter housekeeping until ctx is done.
func (s *Server) StartBackground(ctx context.Context) {
	s.homeCache.StartCleanup(ctx, 5*time.Minute)
	s.publicLimiter.StartCleanupRoutine(ctx)
	s.authLimiter.StartCleanupRoutine(ctx)
}

// Router wires every route.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.RecoveryMiddleware)
	r.Use(s.LoggingMiddleware)
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/", s.handleHome).Methods("GET")
	r.HandleFunc("/services/{id}", s.handleServicePage).Methods("GET")

	r.Handle("/login", s.RateLimitMiddleware(s.authLimiter)(http.HandlerFunc(s.handleLogin))).Methods("GET")
	r.Handle("/auth/callback", s.RateLimitMiddleware(s.authLimiter)(http.HandlerFunc(s.handleAuthCallback))).Methods("GET")
	r.HandleFunc("/logout", s.handleLogout).Methods("GET")
	r.HandleFunc("/admin", s.AuthMiddleware(s.handleAdminDashboard)).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	mountCollection(s, api, "/carousel", newCollection[models.CarouselSlide](s, "Carousel slide", s.Store.Carousel, (*models.CarouselSlide).Prepare), nil)
	mountCollection(s, api, "/services", newCollection[models.Service](s, "Service", s.Store.Services, (*models.Service).Prepare), nil)
	mountCollection(s, api, "/content", newCollection[models.Content](s, "Content", s.Store.Content, (*models.Content).Prepare), nil)
	mountCollection(s, api, "/about", newCollection[models.AboutSection](s, "About section", s.Store.About, (*models.AboutSection).Prepare), nil)
	mountCollection(s, api, "/projects", newCollection[models.Project](s, "Project", s.Store.Projects, (*models.Project).Prepare), nil)
	mountCollection(s, api, "/enquiries", newCollection[models.Enquiry](s, "Enquiry", s.Store.Enquiries, (*models.Enquiry).Prepare), (*models.Enquiry).PreparePublic)
	mountCollection(s, api, "/appointments", newCollection[models.Appointment](s, "Appointment", s.Store.Appointments, (*models.Appointment).Prepare), (*models.Appointment).PreparePublic)
	mountCollection(s, api, "/reviews", newCollection[models.Review](s, "Review", s.Store.Reviews, (*models.Review).Prepare), (*models.Review).PreparePublic)

	api.Handle("/contact-info", s.AdminAPIMiddleware(s.handleGetContactInfo)).Methods("GET")
	api.Handle("/contact-info", s.AdminAPIMiddleware(s.invalidateOnSuccess(s.handleCreateContactInfo))).Methods("POST")
	api.Handle("/contact-info", s.AdminAPIMiddleware(s.invalidateOnSuccess(s.handleUpdateContactInfo))).Methods("PUT")
	api.Handle("/upload", s.AdminAPIMiddleware(s.handleUpload)).Methods("POST")

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", staticHandler()))
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", s.uploadedFilesHandler()))

	return r
}
