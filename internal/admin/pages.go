package admin

import (
	"strings"

	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/validation"
)

// CarouselForm is the edit form of a hero slide.
type CarouselForm struct {
	Title       string
	Subtitle    string
	Description string
	Image       string
	CTAText     string
	CTALink     string
	Order       int
	IsActive    bool
}

// MissingImageMessage blocks saving a slide without an image.
const MissingImageMessage = "Please upload an image or enter an image URL"

var carouselCodec = Codec[models.CarouselSlide, CarouselForm]{
	Noun: "slide",
	Defaults: func(items []models.CarouselSlide) CarouselForm {
		return CarouselForm{Order: len(items) + 1, IsActive: true}
	},
	ToForm: func(s models.CarouselSlide) CarouselForm {
		return CarouselForm{
			Title:       s.Title,
			Subtitle:    s.Subtitle,
			Description: s.Description,
			Image:       s.Image,
			CTAText:     s.CTAText,
			CTALink:     s.CTALink,
			Order:       s.Order,
			IsActive:    s.IsActive,
		}
	},
	FromForm: func(f CarouselForm) (models.CarouselSlide, error) {
		if strings.TrimSpace(f.Image) == "" {
			return models.CarouselSlide{}, &validation.Error{Messages: []string{MissingImageMessage}}
		}
		err := validation.NewValidator().ValidateRequired(f.Title, "Title").Err()
		return models.CarouselSlide{
			Title:       strings.TrimSpace(f.Title),
			Subtitle:    strings.TrimSpace(f.Subtitle),
			Description: strings.TrimSpace(f.Description),
			Image:       strings.TrimSpace(f.Image),
			CTAText:     strings.TrimSpace(f.CTAText),
			CTALink:     strings.TrimSpace(f.CTALink),
			Order:       f.Order,
			IsActive:    f.IsActive,
		}, err
	},
	ID:    func(s models.CarouselSlide) string { return s.ID },
	Image: func(f *CarouselForm) *string { return &f.Image },
}

// ProjectForm edits Features and TechStack as comma separated text.
type ProjectForm struct {
	Title       string
	Description string
	Features    string
	TechStack   string
	Image       string
	GithubURL   string
	DemoURL     string
	Order       int
	IsActive    bool
}

var projectCodec = Codec[models.Project, ProjectForm]{
	Noun: "project",
	Defaults: func([]models.Project) ProjectForm {
		return ProjectForm{IsActive: true}
	},
	ToForm: func(p models.Project) ProjectForm {
		return ProjectForm{
			Title:       p.Title,
			Description: p.Description,
			Features:    JoinList(p.Features),
			TechStack:   JoinList(p.TechStack),
			Image:       p.Image,
			GithubURL:   p.GithubURL,
			DemoURL:     p.DemoURL,
			Order:       p.Order,
			IsActive:    p.IsActive,
		}
	},
	FromForm: func(f ProjectForm) (models.Project, error) {
		err := validation.NewValidator().
			ValidateRequired(f.Title, "Title").
			ValidateRequired(f.Description, "Description").
			Err()
		return models.Project{
			Title:       strings.TrimSpace(f.Title),
			Description: strings.TrimSpace(f.Description),
			Features:    SplitList(f.Features),
			TechStack:   SplitList(f.TechStack),
			Image:       strings.TrimSpace(f.Image),
			GithubURL:   strings.TrimSpace(f.GithubURL),
			DemoURL:     strings.TrimSpace(f.DemoURL),
			Order:       f.Order,
			IsActive:    f.IsActive,
		}, err
	},
	ID:    func(p models.Project) string { return p.ID },
	Image: func(f *ProjectForm) *string { return &f.Image },
}

type preparer[T any] interface {
	*T
	Prepare() error
}

// recordCodec edits a record directly, validating with the record's own rules.
func recordCodec[T any, P preparer[T]](noun string, defaults func() T, id func(T) string, image func(*T) *string) Codec[T, T] {
	return Codec[T, T]{
		Noun:     noun,
		Defaults: func([]T) T { return defaults() },
		ToForm:   func(record T) T { return record },
		FromForm: func(form T) (T, error) {
			err := P(&form).Prepare()
			return form, err
		},
		ID:    id,
		Image: image,
	}
}

var (
	serviceCodec = recordCodec[models.Service](
		"service",
		func() models.Service {
			return models.Service{
				TextColor:      models.DefaultTextColor,
				OverlayOpacity: models.DefaultOverlayOpacity,
				StyleType:      models.DefaultStyleType,
				IsActive:       true,
			}
		},
		func(s models.Service) string { return s.ID },
		func(s *models.Service) *string { return &s.BackgroundImage },
	)

	contentCodec = recordCodec[models.Content](
		"content block",
		func() models.Content {
			return models.Content{
				TextColor:      models.DefaultTextColor,
				OverlayOpacity: models.DefaultOverlayOpacity,
				IsActive:       true,
			}
		},
		func(c models.Content) string { return c.ID },
		func(c *models.Content) *string { return &c.BackgroundImage },
	)

	aboutCodec = recordCodec[models.AboutSection](
		"about section",
		func() models.AboutSection {
			return models.AboutSection{Layout: models.DefaultAboutLayout, IsActive: true}
		},
		func(a models.AboutSection) string { return a.ID },
		func(a *models.AboutSection) *string { return &a.Image },
	)

	reviewCodec = recordCodec[models.Review](
		"review",
		func() models.Review { return models.Review{Rating: 5} },
		func(r models.Review) string { return r.ID },
		nil,
	)

	appointmentCodec = recordCodec[models.Appointment](
		"appointment",
		func() models.Appointment { return models.Appointment{Status: models.AppointmentPending} },
		func(a models.Appointment) string { return a.ID },
		nil,
	)

	enquiryCodec = recordCodec[models.Enquiry](
		"enquiry",
		func() models.Enquiry { return models.Enquiry{Status: models.EnquiryNew} },
		func(e models.Enquiry) string { return e.ID },
		nil,
	)
)

func (d PageDeps) uploadingVia(c *Client) PageDeps {
	if d.Uploader == nil {
		d.Uploader = c
	}
	return d
}

func NewCarouselPage(c *Client, deps PageDeps) *Page[models.CarouselSlide, CarouselForm] {
	return NewPage(Collection[models.CarouselSlide](NewResource[models.CarouselSlide](c, "/api/carousel")), carouselCodec, deps.uploadingVia(c))
}

func NewProjectsPage(c *Client, deps PageDeps) *Page[models.Project, ProjectForm] {
	return NewPage(Collection[models.Project](NewResource[models.Project](c, "/api/projects")), projectCodec, deps.uploadingVia(c))
}

func NewServicesPage(c *Client, deps PageDeps) *Page[models.Service, models.Service] {
	return NewPage(Collection[models.Service](NewResource[models.Service](c, "/api/services")), serviceCodec, deps.uploadingVia(c))
}

func NewContentPage(c *Client, deps PageDeps) *Page[models.Content, models.Content] {
	return NewPage(Collection[models.Content](NewResource[models.Content](c, "/api/content")), contentCodec, deps.uploadingVia(c))
}

func NewAboutPage(c *Client, deps PageDeps) *Page[models.AboutSection, models.AboutSection] {
	return NewPage(Collection[models.AboutSection](NewResource[models.AboutSection](c, "/api/about")), aboutCodec, deps.uploadingVia(c))
}

func NewReviewsPage(c *Client, deps PageDeps) *Page[models.Review, models.Review] {
	return NewPage(Collection[models.Review](NewResource[models.Review](c, "/api/reviews")), reviewCodec, deps)
}

func NewAppointmentsPage(c *Client, deps PageDeps) *Page[models.Appointment, models.Appointment] {
	return NewPage(Collection[models.Appointment](NewResource[models.Appointment](c, "/api/appointments")), appointmentCodec, deps)
}

func NewEnquiriesPage(c *Client, deps PageDeps) *Page[models.Enquiry, models.Enquiry] {
	return NewPage(Collection[models.Enquiry](NewResource[models.Enquiry](c, "/api/enquiries")), enquiryCodec, deps)
}
