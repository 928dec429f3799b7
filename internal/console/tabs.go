package console

import (
	"context"
	"fmt"
	"strings"

	"lawFirmWebsite/internal/admin"
	"lawFirmWebsite/internal/carousel"
	"lawFirmWebsite/internal/models"
)

// row is one list line, independent of the record type behind it.
type row struct {
	ID       string
	Title    string
	Detail   string
	Active   bool
	Deleting bool
}

// tab is one screen of the console.
type tab interface {
	Name() string
	Noun() string
	Fetch(ctx context.Context) error
	Rows() []row
	// Open starts editing the record with id, or a new record when id is empty.
	Open(id string) (*form, error)
}

// toggler flips the flag a row's icon shows.
type toggler interface {
	ToggleActive(ctx context.Context, id string) error
	// ToggleVerb describes what a toggle does to a row that is currently active or not.
	ToggleVerb(active bool) string
}

type deleter interface {
	Delete(ctx context.Context, id string) error
}

// summarizer tabs show one block of text instead of rows.
type summarizer interface {
	Summary() string
}

// pageTab drives an admin.Page.
type pageTab[T, F any] struct {
	name   string
	page   *admin.Page[T, F]
	row    func(T) row
	fields []field[F]
}

func (t *pageTab[T, F]) Name() string { return t.name }
func (t *pageTab[T, F]) Noun() string { return t.page.Noun() }

func (t *pageTab[T, F]) Fetch(ctx context.Context) error {
	return t.page.Fetch(ctx)
}

func (t *pageTab[T, F]) Rows() []row {
	items := t.page.Items()
	rows := make([]row, 0, len(items))
	for _, item := range items {
		r := t.row(item)
		r.Deleting = t.page.IsDeleting(r.ID)
		rows = append(rows, r)
	}
	return rows
}

func (t *pageTab[T, F]) Open(id string) (*form, error) {
	if id == "" {
		t.page.OpenCreate()
		return pageForm(t.page, t.fields, "New "+t.page.Noun()), nil
	}
	if err := t.page.OpenEdit(id); err != nil {
		return nil, err
	}
	return pageForm(t.page, t.fields, "Edit "+t.page.Noun()), nil
}

func (t *pageTab[T, F]) Delete(ctx context.Context, id string) error {
	return t.page.Delete(ctx, id)
}

// toggleTab is a pageTab whose records carry a boolean the list can flip.
type toggleTab[T, F any] struct {
	*pageTab[T, F]
	flag    func(form *F) *bool
	on, off string
}

// ToggleActive flips the flag through the same edit form an admin would use. The form is
// closed again when the save fails so the next toggle starts clean.
func (t *toggleTab[T, F]) ToggleActive(ctx context.Context, id string) error {
	if err := t.page.OpenEdit(id); err != nil {
		return err
	}
	err := t.page.Edit(func(form *F) {
		flag := t.flag(form)
		*flag = !*flag
	})
	if err == nil {
		err = t.page.Submit(ctx)
	}
	if err != nil {
		t.page.Cancel()
	}
	return err
}

func (t *toggleTab[T, F]) ToggleVerb(active bool) string {
	if active {
		return t.off
	}
	return t.on
}

func publishable[T, F any](p *pageTab[T, F], flag func(*F) *bool) *toggleTab[T, F] {
	return &toggleTab[T, F]{pageTab: p, flag: flag, on: "published", off: "hidden"}
}

func newCarouselTab(page *admin.Page[models.CarouselSlide, admin.CarouselForm]) *toggleTab[models.CarouselSlide, admin.CarouselForm] {
	type F = admin.CarouselForm
	return publishable(&pageTab[models.CarouselSlide, F]{
		name: "Carousel",
		page: page,
		row: func(s models.CarouselSlide) row {
			return row{
				ID:     s.ID,
				Title:  s.Title,
				Detail: fmt.Sprintf("#%d  %s", s.Order, s.Image),
				Active: s.IsActive,
			}
		},
		fields: []field[F]{
			text("Title", func(f *F) *string { return &f.Title }),
			text("Subtitle", func(f *F) *string { return &f.Subtitle }),
			text("Description", func(f *F) *string { return &f.Description }),
			imagePath("Image", func(f *F) *string { return &f.Image }),
			text("CTA text", func(f *F) *string { return &f.CTAText }),
			text("CTA link", func(f *F) *string { return &f.CTALink }),
			number("Order", func(f *F) *int { return &f.Order }),
			yesNo("Active", func(f *F) *bool { return &f.IsActive }),
		},
	}, func(f *F) *bool { return &f.IsActive })
}

func newProjectsTab(page *admin.Page[models.Project, admin.ProjectForm]) *toggleTab[models.Project, admin.ProjectForm] {
	type F = admin.ProjectForm
	return publishable(&pageTab[models.Project, F]{
		name: "Projects",
		page: page,
		row: func(p models.Project) row {
			return row{
				ID:     p.ID,
				Title:  p.Title,
				Detail: fmt.Sprintf("#%d  %s", p.Order, admin.JoinList(p.TechStack)),
				Active: p.IsActive,
			}
		},
		fields: []field[F]{
			text("Title", func(f *F) *string { return &f.Title }),
			text("Description", func(f *F) *string { return &f.Description }),
			text("Features", func(f *F) *string { return &f.Features }),
			text("Tech stack", func(f *F) *string { return &f.TechStack }),
			imagePath("Image", func(f *F) *string { return &f.Image }),
			text("GitHub URL", func(f *F) *string { return &f.GithubURL }),
			text("Demo URL", func(f *F) *string { return &f.DemoURL }),
			number("Order", func(f *F) *int { return &f.Order }),
			yesNo("Active", func(f *F) *bool { return &f.IsActive }),
		},
	}, func(f *F) *bool { return &f.IsActive })
}

func newServicesTab(page *admin.Page[models.Service, models.Service]) *toggleTab[models.Service, models.Service] {
	type F = models.Service
	return publishable(&pageTab[F, F]{
		name: "Services",
		page: page,
		row: func(s F) row {
			return row{
				ID:     s.ID,
				Title:  s.Title,
				Detail: fmt.Sprintf("#%d  %s", s.Order, s.StyleType),
				Active: s.IsActive,
			}
		},
		fields: []field[F]{
			text("Title", func(f *F) *string { return &f.Title }),
			text("Subtitle", func(f *F) *string { return &f.Subtitle }),
			text("Description", func(f *F) *string { return &f.Description }),
			text("Details", func(f *F) *string { return &f.DetailedDescription }),
			imagePath("Background image", func(f *F) *string { return &f.BackgroundImage }),
			text("CTA text", func(f *F) *string { return &f.CTAText }),
			text("CTA link", func(f *F) *string { return &f.CTALink }),
			text("Text color", func(f *F) *string { return &f.TextColor }),
			decimal("Overlay opacity", func(f *F) *float64 { return &f.OverlayOpacity }),
			text("Style", func(f *F) *string { return &f.StyleType }),
			text("Icon", func(f *F) *string { return &f.Icon }),
			number("Order", func(f *F) *int { return &f.Order }),
			yesNo("Active", func(f *F) *bool { return &f.IsActive }),
		},
	}, func(f *F) *bool { return &f.IsActive })
}

func newContentTab(page *admin.Page[models.Content, models.Content]) *toggleTab[models.Content, models.Content] {
	type F = models.Content
	return publishable(&pageTab[F, F]{
		name: "Content",
		page: page,
		row: func(c F) row {
			return row{
				ID:     c.ID,
				Title:  c.Title,
				Detail: fmt.Sprintf("#%d  %s", c.Order, c.BackgroundImage),
				Active: c.IsActive,
			}
		},
		fields: []field[F]{
			text("Title", func(f *F) *string { return &f.Title }),
			text("Subtitle", func(f *F) *string { return &f.Subtitle }),
			text("Description", func(f *F) *string { return &f.Description }),
			imagePath("Background image", func(f *F) *string { return &f.BackgroundImage }),
			text("CTA text", func(f *F) *string { return &f.CTAText }),
			text("CTA link", func(f *F) *string { return &f.CTALink }),
			text("Text color", func(f *F) *string { return &f.TextColor }),
			decimal("Overlay opacity", func(f *F) *float64 { return &f.OverlayOpacity }),
			number("Order", func(f *F) *int { return &f.Order }),
			yesNo("Active", func(f *F) *bool { return &f.IsActive }),
		},
	}, func(f *F) *bool { return &f.IsActive })
}

func newAboutTab(page *admin.Page[models.AboutSection, models.AboutSection]) *toggleTab[models.AboutSection, models.AboutSection] {
	type F = models.AboutSection
	return publishable(&pageTab[F, F]{
		name: "About",
		page: page,
		row: func(a F) row {
			return row{
				ID:     a.ID,
				Title:  a.Title,
				Detail: fmt.Sprintf("#%d  %s", a.Order, a.Layout),
				Active: a.IsActive,
			}
		},
		fields: []field[F]{
			text("Title", func(f *F) *string { return &f.Title }),
			text("Subtitle", func(f *F) *string { return &f.Subtitle }),
			text("Content", func(f *F) *string { return &f.Content }),
			imagePath("Image", func(f *F) *string { return &f.Image }),
			text("Layout", func(f *F) *string { return &f.Layout }),
			number("Order", func(f *F) *int { return &f.Order }),
			yesNo("Active", func(f *F) *bool { return &f.IsActive }),
		},
	}, func(f *F) *bool { return &f.IsActive })
}

func newReviewsTab(page *admin.Page[models.Review, models.Review]) *toggleTab[models.Review, models.Review] {
	type F = models.Review
	return &toggleTab[F, F]{
		pageTab: &pageTab[F, F]{
			name: "Reviews",
			page: page,
			row: func(r F) row {
				return row{
					ID:     r.ID,
					Title:  fmt.Sprintf("%s  %s", r.Author, strings.Repeat("★", max(0, min(r.Rating, 5)))),
					Detail: excerpt(r.Content, 60),
					Active: r.IsApproved,
				}
			},
			fields: []field[F]{
				text("Author", func(f *F) *string { return &f.Author }),
				text("Review", func(f *F) *string { return &f.Content }),
				number("Rating", func(f *F) *int { return &f.Rating }),
				yesNo("Approved", func(f *F) *bool { return &f.IsApproved }),
			},
		},
		flag: func(f *F) *bool { return &f.IsApproved },
		on:   "approved",
		off:  "unapproved",
	}
}

// Inbox rows are marked done once their status has moved past the initial one.
func newAppointmentsTab(page *admin.Page[models.Appointment, models.Appointment]) *pageTab[models.Appointment, models.Appointment] {
	type F = models.Appointment
	return &pageTab[F, F]{
		name: "Appointments",
		page: page,
		row: func(a F) row {
			return row{
				ID:     a.ID,
				Title:  fmt.Sprintf("%s  %s %s", a.Name, a.Date, a.Time),
				Detail: fmt.Sprintf("%s  [%s]  %s", a.Service, a.Status, a.Email),
				Active: a.Status != models.AppointmentPending,
			}
		},
		fields: []field[F]{
			text("Name", func(f *F) *string { return &f.Name }),
			text("Email", func(f *F) *string { return &f.Email }),
			text("Phone", func(f *F) *string { return &f.Phone }),
			text("Date", func(f *F) *string { return &f.Date }),
			text("Time", func(f *F) *string { return &f.Time }),
			text("Service", func(f *F) *string { return &f.Service }),
			text("Message", func(f *F) *string { return &f.Message }),
			text("Status", func(f *F) *string { return &f.Status }),
		},
	}
}

func newEnquiriesTab(page *admin.Page[models.Enquiry, models.Enquiry]) *pageTab[models.Enquiry, models.Enquiry] {
	type F = models.Enquiry
	return &pageTab[F, F]{
		name: "Enquiries",
		page: page,
		row: func(e F) row {
			return row{
				ID:     e.ID,
				Title:  e.Subject,
				Detail: fmt.Sprintf("%s <%s>  [%s]", e.Name, e.Email, e.Status),
				Active: e.Status != models.EnquiryNew,
			}
		},
		fields: []field[F]{
			text("Name", func(f *F) *string { return &f.Name }),
			text("Email", func(f *F) *string { return &f.Email }),
			text("Subject", func(f *F) *string { return &f.Subject }),
			text("Message", func(f *F) *string { return &f.Message }),
			text("Status", func(f *F) *string { return &f.Status }),
		},
	}
}

// contactTab edits the single contact-info record and shows it as the site would.
type contactTab struct {
	page   *admin.ContactInfoPage
	fields []field[admin.ContactForm]
}

func newContactTab(page *admin.ContactInfoPage) *contactTab {
	type F = admin.ContactForm
	return &contactTab{
		page: page,
		fields: []field[F]{
			lines("Address", func(f *F) *string { return &f.Address }),
			text("Phone", func(f *F) *string { return &f.Phone }),
			text("Email", func(f *F) *string { return &f.Email }),
			lines("Working hours", func(f *F) *string { return &f.WorkingHours }),
		},
	}
}

func (t *contactTab) Name() string                    { return "Contact" }
func (t *contactTab) Noun() string                    { return "contact info" }
func (t *contactTab) Fetch(ctx context.Context) error { return t.page.Fetch(ctx) }
func (t *contactTab) Rows() []row                     { return nil }

// Open ignores id: there is only one record.
func (t *contactTab) Open(string) (*form, error) {
	f := &form{
		title:  "Edit contact information",
		labels: make([]string, len(t.fields)),
		image:  -1,
		values: func() []string {
			current := t.page.Form()
			out := make([]string, len(t.fields))
			for i, fld := range t.fields {
				out[i] = fld.get(current)
			}
			return out
		},
		apply: func(values []string) error {
			return applyFields(t.fields, values, func(fn func(*admin.ContactForm)) error {
				t.page.Edit(fn)
				return nil
			})
		},
		submit:  t.page.Save,
		cancel:  t.page.Reset,
		preview: t.Summary,
	}
	for i, fld := range t.fields {
		f.labels[i] = fld.label
	}
	return f, nil
}

// Summary renders the contact block from the current form.
func (t *contactTab) Summary() string {
	p := t.page.Preview()
	var b strings.Builder
	if !t.page.Exists() {
		b.WriteString(mutedStyle.Render("Not saved yet") + "\n")
	}
	entry := func(label string, values ...string) {
		if len(values) == 0 {
			values = []string{mutedStyle.Render("-")}
		}
		for i, v := range values {
			if i == 0 {
				b.WriteString(fmt.Sprintf("%-8s %s\n", label, v))
			} else {
				b.WriteString(fmt.Sprintf("%-8s %s\n", "", v))
			}
		}
	}
	entry("Address", p.AddressLines...)
	entry("Phone", withLink(p.Phone, p.PhoneHref)...)
	entry("Email", withLink(p.Email, p.EmailHref)...)
	entry("Hours", p.HoursLines...)
	return b.String()
}

func withLink(text, href string) []string {
	if text == "" {
		return nil
	}
	if href == "" {
		return []string{text}
	}
	return []string{text + "  " + mutedStyle.Render("("+href+")")}
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// activeSlides is what the public hero would rotate: active slides in list order.
func activeSlides(page *admin.Page[models.CarouselSlide, admin.CarouselForm]) []carousel.Slide {
	var active []models.CarouselSlide
	for _, s := range page.Items() {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return carousel.FromModels(active)
}
