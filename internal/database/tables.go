package database

import "lawFirmWebsite/internal/models"

const (
	orderedBySortOrder = "sort_order ASC, id ASC"
	newestFirst        = "created_at DESC, id DESC"
)

var CarouselTable = Table[models.CarouselSlide]{
	Name:          "carousel_slides",
	Columns:       []string{"title", "subtitle", "description", "image", "cta_text", "cta_link", "sort_order", "is_active"},
	OrderBy:       orderedBySortOrder,
	VisibleColumn: "is_active",
	Meta:          func(s *models.CarouselSlide) *models.Meta { return &s.Meta },
	Values: func(s *models.CarouselSlide) []any {
		return []any{s.Title, s.Subtitle, s.Description, s.Image, s.CTAText, s.CTALink, s.Order, s.IsActive}
	},
	Targets: func(s *models.CarouselSlide) []any {
		return []any{&s.Title, &s.Subtitle, &s.Description, &s.Image, &s.CTAText, &s.CTALink, &s.Order, &s.IsActive}
	},
}

var ServicesTable = Table[models.Service]{
	Name: "services",
	Columns: []string{"title", "subtitle", "description", "detailed_description", "background_image", "cta_text",
		"cta_link", "text_color", "overlay_opacity", "style_type", "icon", "sort_order", "is_active"},
	OrderBy:       orderedBySortOrder,
	VisibleColumn: "is_active",
	Meta:          func(s *models.Service) *models.Meta { return &s.Meta },
	Values: func(s *models.Service) []any {
		return []any{s.Title, s.Subtitle, s.Description, s.DetailedDescription, s.BackgroundImage, s.CTAText,
			s.CTALink, s.TextColor, s.OverlayOpacity, s.StyleType, s.Icon, s.Order, s.IsActive}
	},
	Targets: func(s *models.Service) []any {
		return []any{&s.Title, &s.Subtitle, &s.Description, &s.DetailedDescription, &s.BackgroundImage, &s.CTAText,
			&s.CTALink, &s.TextColor, &s.OverlayOpacity, &s.StyleType, &s.Icon, &s.Order, &s.IsActive}
	},
}

var ContentTable = Table[models.Content]{
	Name: "contents",
	Columns: []string{"title", "subtitle", "description", "background_image", "cta_text", "cta_link",
		"text_color", "overlay_opacity", "sort_order", "is_active"},
	OrderBy:       orderedBySortOrder,
	VisibleColumn: "is_active",
	Meta:          func(c *models.Content) *models.Meta { return &c.Meta },
	Values: func(c *models.Content) []any {
		return []any{c.Title, c.Subtitle, c.Description, c.BackgroundImage, c.CTAText, c.CTALink,
			c.TextColor, c.OverlayOpacity, c.Order, c.IsActive}
	},
	Targets: func(c *models.Content) []any {
		return []any{&c.Title, &c.Subtitle, &c.Description, &c.BackgroundImage, &c.CTAText, &c.CTALink,
			&c.TextColor, &c.OverlayOpacity, &c.Order, &c.IsActive}
	},
}

var AboutTable = Table[models.AboutSection]{
	Name:          "about_sections",
	Columns:       []string{"title", "subtitle", "content", "image", "layout", "sort_order", "is_active"},
	OrderBy:       orderedBySortOrder,
	VisibleColumn: "is_active",
	Meta:          func(a *models.AboutSection) *models.Meta { return &a.Meta },
	Values: func(a *models.AboutSection) []any {
		return []any{a.Title, a.Subtitle, a.Content, a.Image, a.Layout, a.Order, a.IsActive}
	},
	Targets: func(a *models.AboutSection) []any {
		return []any{&a.Title, &a.Subtitle, &a.Content, &a.Image, &a.Layout, &a.Order, &a.IsActive}
	},
}

var ProjectsTable = Table[models.Project]{
	Name:          "projects",
	Columns:       []string{"title", "description", "features", "tech_stack", "image", "github_url", "demo_url", "sort_order", "is_active"},
	OrderBy:       orderedBySortOrder,
	VisibleColumn: "is_active",
	Meta:          func(p *models.Project) *models.Meta { return &p.Meta },
	Values: func(p *models.Project) []any {
		return []any{p.Title, p.Description, p.Features, p.TechStack, p.Image, p.GithubURL, p.DemoURL, p.Order, p.IsActive}
	},
	Targets: func(p *models.Project) []any {
		return []any{&p.Title, &p.Description, &p.Features, &p.TechStack, &p.Image, &p.GithubURL, &p.DemoURL, &p.Order, &p.IsActive}
	},
}

var EnquiriesTable = Table[models.Enquiry]{
	Name:    "enquiries",
	Columns: []string{"name", "email", "subject", "message", "status"},
	OrderBy: newestFirst,
	Meta:    func(e *models.Enquiry) *models.Meta { return &e.Meta },
	Values: func(e *models.Enquiry) []any {
		return []any{e.Name, e.Email, e.Subject, e.Message, e.Status}
	},
	Targets: func(e *models.Enquiry) []any {
		return []any{&e.Name, &e.Email, &e.Subject, &e.Message, &e.Status}
	},
}

var AppointmentsTable = Table[models.Appointment]{
	Name:    "appointments",
	Columns: []string{"name", "email", "phone", "appointment_date", "appointment_time", "service", "message", "status"},
	OrderBy: newestFirst,
	Meta:    func(a *models.Appointment) *models.Meta { return &a.Meta },
	Values: func(a *models.Appointment) []any {
		return []any{a.Name, a.Email, a.Phone, a.Date, a.Time, a.Service, a.Message, a.Status}
	},
	Targets: func(a *models.Appointment) []any {
		return []any{&a.Name, &a.Email, &a.Phone, &a.Date, &a.Time, &a.Service, &a.Message, &a.Status}
	},
}

var ReviewsTable = Table[models.Review]{
	Name:          "reviews",
	Columns:       []string{"author", "content", "rating", "is_approved"},
	OrderBy:       newestFirst,
	VisibleColumn: "is_approved",
	Meta:          func(r *models.Review) *models.Meta { return &r.Meta },
	Values: func(r *models.Review) []any {
		return []any{r.Author, r.Content, r.Rating, r.IsApproved}
	},
	Targets: func(r *models.Review) []any {
		return []any{&r.Author, &r.Content, &r.Rating, &r.IsApproved}
	},
}

var ContactInfoTable = Table[models.ContactInfo]{
	Name:    "contact_info",
	Columns: []string{"address", "phone", "email", "working_hours"},
	OrderBy: "created_at ASC, id ASC",
	Meta:    func(c *models.ContactInfo) *models.Meta { return &c.Meta },
	Values: func(c *models.ContactInfo) []any {
		return []any{c.Address, c.Phone, c.Email, c.WorkingHours}
	},
	Targets: func(c *models.ContactInfo) []any {
		return []any{&c.Address, &c.Phone, &c.Email, &c.WorkingHours}
	},
}

var UsersTable = Table[models.User]{
	Name:    "users",
	Columns: []string{"email", "name", "role"},
	OrderBy: "email ASC",
	Meta:    func(u *models.User) *models.Meta { return &u.Meta },
	Values: func(u *models.User) []any {
		return []any{u.Email, u.Name, u.Role}
	},
	Targets: func(u *models.User) []any {
		return []any{&u.Email, &u.Name, &u.Role}
	},
}
