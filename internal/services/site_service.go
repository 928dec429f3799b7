package services

import (
	"context"
	"fmt"
	"time"

	"lawFirmWebsite/internal/carousel"
	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/logging"
	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/utils"
)

const homePageKey = "home"

// HomePage is everything the public landing page renders.
type HomePage struct {
	Carousel carousel.View
	Services []models.Service
	About    []models.AboutSection
	Content  []models.Content
	Projects []models.Project
	Reviews  []models.Review
	Contact  *models.ContactInfo
}

// SiteService assembles public page data from the store and caches it.
type SiteService struct {
	store            *database.Store
	cache            *utils.Cache[*HomePage]
	carouselInterval time.Duration
	logger           *logging.Logger
}

func NewSiteService(store *database.Store, cache *utils.Cache[*HomePage], carouselInterval time.Duration, logger *logging.Logger) *SiteService {
	return &SiteService{store: store, cache: cache, carouselInterval: carouselInterval, logger: logger}
}

// HomePage returns the cached landing page data, rebuilding it on a miss.
func (s *SiteService) HomePage(ctx context.Context) (*HomePage, error) {
	if page, ok := s.cache.Get(homePageKey); ok {
		return page, nil
	}

	page, err := s.buildHomePage(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(homePageKey, page)
	return page, nil
}

func (s *SiteService) buildHomePage(ctx context.Context) (*HomePage, error) {
	visible := database.ListOptions{VisibleOnly: true}
	page := &HomePage{}

	slides, err := s.store.Carousel.List(ctx, visible)
	if err != nil {
		return nil, fmt.Errorf("loading carousel: %w", err)
	}
	page.Carousel = carousel.New(carousel.FromModels(slides), carousel.WithInterval(s.carouselInterval)).View()

	if page.Services, err = s.store.Services.List(ctx, visible); err != nil {
		return nil, fmt.Errorf("loading services: %w", err)
	}
	if page.About, err = s.store.About.List(ctx, visible); err != nil {
		return nil, fmt.Errorf("loading about sections: %w", err)
	}
	if page.Content, err = s.store.Content.List(ctx, visible); err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	if page.Projects, err = s.store.Projects.List(ctx, visible); err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	if page.Reviews, err = s.store.Reviews.List(ctx, visible); err != nil {
		return nil, fmt.Errorf("loading reviews: %w", err)
	}
	if page.Contact, err = s.store.ContactInfo.Current(ctx); err != nil {
		return nil, fmt.Errorf("loading contact info: %w", err)
	}
	return page, nil
}

// Service returns an active service for its detail page. Inactive services are not found.
func (s *SiteService) Service(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.store.Services.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, database.ErrNotFound
	}
	return svc, nil
}

// Contact returns the current contact record, or nil.
func (s *SiteService) Contact(ctx context.Context) (*models.ContactInfo, error) {
	return s.store.ContactInfo.Current(ctx)
}

// Invalidate drops cached page data after content changes.
func (s *SiteService) Invalidate() {
	s.cache.Clear()
	s.logger.Debug("Home page cache invalidated")
}
