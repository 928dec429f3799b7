package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/utils"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.DB().PingContext(r.Context()); err != nil {
		s.Logger.WithError(err).Error("Health check failed")
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page, err := s.Site.HomePage(r.Context())
	if err != nil {
		s.Logger.WithError(err).Error("Failed to build home page")
		s.renderError(w, r, http.StatusInternalServerError, "We could not load this page. Please try again shortly.")
		return
	}
	s.render(w, r, http.StatusOK, "home", "Home", page)
}

// ServicePage is the data of a practice-area detail page.
type ServicePage struct {
	Service *models.Service
	Contact *models.ContactInfo
}

func (s *Server) handleServicePage(w http.ResponseWriter, r *http.Request) {
	svc, err := s.Site.Service(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.renderError(w, r, http.StatusNotFound, "That service could not be found.")
			return
		}
		s.Logger.WithError(err).Error("Failed to load service")
		s.renderError(w, r, http.StatusInternalServerError, "We could not load this page. Please try again shortly.")
		return
	}

	contact, err := s.Site.Contact(r.Context())
	if err != nil {
		s.Logger.WithError(err).Warn("Failed to load contact info for service page")
	}
	s.render(w, r, http.StatusOK, "service", svc.Title, ServicePage{Service: svc, Contact: contact})
}

// DashboardPage lists record counts per collection for the admin landing page.
type DashboardPage struct {
	Collections []DashboardCollection
	HasContact  bool
}

type DashboardCollection struct {
	Name  string
	Path  string
	Count int
}

var dashboardOrder = []struct{ key, name string }{
	{"carousel", "Carousel slides"},
	{"services", "Services"},
	{"content", "Content blocks"},
	{"about", "About sections"},
	{"projects", "Projects"},
	{"enquiries", "Enquiries"},
	{"appointments", "Appointments"},
	{"reviews", "Reviews"},
}

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := s.Store.Counts(r.Context())
	if err != nil {
		s.Logger.WithError(err).Error("Failed to count records for dashboard")
		s.renderError(w, r, http.StatusInternalServerError, "Could not load the dashboard.")
		return
	}
	contact, err := s.Store.ContactInfo.Current(r.Context())
	if err != nil {
		s.Logger.WithError(err).Error("Failed to load contact info for dashboard")
		s.renderError(w, r, http.StatusInternalServerError, "Could not load the dashboard.")
		return
	}

	page := DashboardPage{HasContact: contact != nil}
	for _, c := range dashboardOrder {
		page.Collections = append(page.Collections, DashboardCollection{
			Name:  c.name,
			Path:  "/api/" + c.key,
			Count: counts[c.key],
		})
	}

	utils.NoCache(w)
	s.render(w, r, http.StatusOK, "admin", "Admin dashboard", page)
}

// ErrorPage is rendered for failed page requests.
type ErrorPage struct {
	Status  int
	Message string
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "error", http.StatusText(status), ErrorPage{Status: status, Message: message})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, pageData interface{}) {
	data := TemplateData{
		Title:        title,
		OAuthEnabled: s.Config.OAuthEnabled(),
		PageData:     pageData,
	}
	if email, ok := utils.GetUserEmail(r); ok {
		data.UserEmail = email
		data.IsAuthenticated = true
	}
	data.CSRFToken, _ = utils.GetCSRFToken(r)

	if err := s.Templates.RenderTemplate(w, status, name, data); err != nil {
		s.Logger.WithError(err).WithField("template", name).Error("Failed to render template")
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

