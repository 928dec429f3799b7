package admin

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawFirmWebsite/internal/config"
	"lawFirmWebsite/internal/handlers"
	"lawFirmWebsite/internal/logging"
	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/testutil"
	"lawFirmWebsite/internal/uploads"
)

const consoleToken = "console-token"

// newAPI runs the real router over an in-memory database.
func newAPI(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Environment:      "test",
		SessionSecret:    []byte("0123456789abcdef0123456789abcdef"),
		SessionMaxAge:    3600,
		AdminAPIToken:    consoleToken,
		CarouselInterval: 5 * time.Second,
		Upload:           config.UploadConfig{Backend: "memory", MaxBytes: 1 << 20},
	}
	srv := handlers.NewServer(cfg, logging.Discard(), testutil.NewTestStore(t), uploads.NewMemoryStore())

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func newAPIClient(t *testing.T) *Client {
	t.Helper()
	return NewClient(newAPI(t).URL, consoleToken, 5*time.Second)
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{7}, 32)...)

func TestResource_CarouselRoundTrip(t *testing.T) {
	client := newAPIClient(t)
	slides := NewResource[models.CarouselSlide](client, "/api/carousel")
	ctx := context.Background()

	created, err := slides.Create(ctx, models.CarouselSlide{
		Title: "Sale", Subtitle: "Now", Description: "D", Image: "/i.jpg", CTAText: "Go", Order: 1, IsActive: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	items, err := slides.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sale", items[0].Title)
	assert.Equal(t, "Now", items[0].Subtitle)
	assert.Equal(t, "/i.jpg", items[0].Image)

	created.Title = "Sale ends soon"
	updated, err := slides.Update(ctx, created.ID, created)
	require.NoError(t, err)
	assert.Equal(t, "Sale ends soon", updated.Title)

	require.NoError(t, slides.Delete(ctx, created.ID))
	items, err = slides.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestResource_ServerErrorsAreVerbatim(t *testing.T) {
	client := newAPIClient(t)
	slides := NewResource[models.CarouselSlide](client, "/api/carousel")

	_, err := slides.Create(context.Background(), models.CarouselSlide{Title: "No image"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Image is required", apiErr.Message)

	err = slides.Delete(context.Background(), "missing")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Carousel slide not found", apiErr.Message)
}

func TestClient_WrongToken(t *testing.T) {
	api := newAPI(t)
	client := NewClient(api.URL, "nope", time.Second)
	notify := &recordingNotifier{}
	page := NewCarouselPage(client, PageDeps{Notify: notify})

	assert.Error(t, page.Fetch(context.Background()))

	page.OpenCreate()
	require.NoError(t, page.Edit(func(f *CarouselForm) {
		f.Title = "T"
		f.Image = "/uploads/t.png"
	}))
	require.Error(t, page.Submit(context.Background()))
	assert.Equal(t, []string{"Invalid API token"}, notify.Alerts())
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	_, err := NewResource[models.Project](NewClient(ts.URL, "", time.Second), "/api/projects").List(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestClient_Upload(t *testing.T) {
	client := newAPIClient(t)

	path, err := client.Upload(context.Background(), "x.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Regexp(t, `^/uploads/[0-9a-f-]+\.png$`, path)

	_, err = client.Upload(context.Background(), "notes.txt", bytes.NewBufferString("plain text"))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Only PNG, JPEG, GIF and WebP images are allowed", apiErr.Message)
}

func TestCarouselPage_EndToEnd(t *testing.T) {
	client := newAPIClient(t)
	notify := &recordingNotifier{}
	page := NewCarouselPage(client, PageDeps{Notify: notify})
	ctx := context.Background()

	require.NoError(t, page.Fetch(ctx))
	assert.Empty(t, page.Items())

	page.OpenCreate()
	assert.Equal(t, 1, page.Form().Order)
	require.NoError(t, page.UploadImage(ctx, "hero.png", bytes.NewReader(pngBytes)))
	uploaded := page.Form().Image
	assert.Equal(t, uploaded, page.PreviewSrc())

	require.NoError(t, page.Edit(func(f *CarouselForm) { f.Title = "Welcome" }))
	require.NoError(t, page.Submit(ctx))

	items := page.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Welcome", items[0].Title)
	assert.Equal(t, uploaded, items[0].Image)

	page.OpenCreate()
	assert.Equal(t, 2, page.Form().Order)
	page.Cancel()

	require.NoError(t, page.OpenEdit(items[0].ID))
	require.NoError(t, page.Edit(func(f *CarouselForm) { f.IsActive = false }))
	require.NoError(t, page.Submit(ctx))
	assert.False(t, page.Items()[0].IsActive)
	assert.Equal(t, "Welcome", page.Items()[0].Title)

	require.NoError(t, page.Delete(ctx, items[0].ID))
	assert.Empty(t, page.Items())
	assert.Empty(t, notify.Alerts())
}

func TestProjectsPage_SendsTrimmedArrays(t *testing.T) {
	api := newAPI(t)
	client := NewClient(api.URL, consoleToken, 5*time.Second)
	page := NewProjectsPage(client, PageDeps{})
	ctx := context.Background()

	page.OpenCreate()
	require.NoError(t, page.Edit(func(f *ProjectForm) {
		f.Title = "Probate win"
		f.Description = "Estate recovered"
		f.Features = "a, b ,  , c"
		f.TechStack = "Mediation,Trial"
	}))
	require.NoError(t, page.Submit(ctx))

	items := page.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.StringList{"a", "b", "c"}, items[0].Features)
	assert.Equal(t, models.StringList{"Mediation", "Trial"}, items[0].TechStack)

	require.NoError(t, page.OpenEdit(items[0].ID))
	assert.Equal(t, "a, b, c", page.Form().Features)
}

func TestOtherPages_Create(t *testing.T) {
	client := newAPIClient(t)
	ctx := context.Background()

	services := NewServicesPage(client, PageDeps{})
	services.OpenCreate()
	require.NoError(t, services.Edit(func(s *models.Service) {
		s.Title = "Immigration"
		s.Description = "Visas and residency"
	}))
	require.NoError(t, services.Submit(ctx))
	require.Len(t, services.Items(), 1)
	assert.Equal(t, 0.5, services.Items()[0].OverlayOpacity)

	enquiries := NewEnquiriesPage(client, PageDeps{})
	enquiries.OpenCreate()
	require.NoError(t, enquiries.Edit(func(e *models.Enquiry) {
		e.Name = "Kim"
		e.Email = "kim@example.com"
		e.Subject = "Lease"
		e.Message = "Question about my lease"
	}))
	require.NoError(t, enquiries.Submit(ctx))

	require.NoError(t, enquiries.OpenEdit(enquiries.Items()[0].ID))
	require.NoError(t, enquiries.Edit(func(e *models.Enquiry) { e.Status = models.EnquiryReplied }))
	require.NoError(t, enquiries.Submit(ctx))
	assert.Equal(t, models.EnquiryReplied, enquiries.Items()[0].Status)
}

func TestContactInfoPage_EndToEnd(t *testing.T) {
	client := newAPIClient(t)
	notify := &recordingNotifier{}
	page := NewContactInfoPage(client, PageDeps{Notify: notify})
	ctx := context.Background()

	require.NoError(t, page.Fetch(ctx))
	assert.False(t, page.Exists())
	assert.Equal(t, ContactForm{}, page.Form())

	page.Edit(func(f *ContactForm) {
		f.Address = "1 Main St\n\nSpringfield"
		f.Phone = "+1 (555) 010-2030"
		f.Email = "office@firm.com"
		f.WorkingHours = "Mon-Fri 9-5\nSat by appointment"
	})

	preview := page.Preview()
	assert.Equal(t, []string{"1 Main St", "Springfield"}, preview.AddressLines)
	assert.Equal(t, "tel:+15550102030", preview.PhoneHref)
	assert.Equal(t, "mailto:office@firm.com", preview.EmailHref)
	assert.Equal(t, []string{"Mon-Fri 9-5", "Sat by appointment"}, preview.HoursLines)

	require.NoError(t, page.Save(ctx))
	assert.True(t, page.Exists())

	page.Edit(func(f *ContactForm) { f.Phone = "+1 555 999 0000" })
	require.NoError(t, page.Save(ctx))

	toasts := notify.Toasts()
	require.Len(t, toasts, 2)
	for _, toast := range toasts {
		assert.Equal(t, ToastSuccess, toast.Kind)
		assert.Equal(t, ToastDuration, toast.Duration)
	}

	fresh := NewContactInfoPage(client, PageDeps{})
	require.NoError(t, fresh.Fetch(ctx))
	assert.Equal(t, "+1 555 999 0000", fresh.Form().Phone)
}

func TestContactInfoPage_Failures(t *testing.T) {
	client := newAPIClient(t)
	notify := &recordingNotifier{}
	page := NewContactInfoPage(client, PageDeps{Notify: notify})
	ctx := context.Background()

	page.Edit(func(f *ContactForm) { f.Address = "Somewhere" })
	require.Error(t, page.Save(ctx))
	assert.Len(t, notify.Alerts(), 1)
	assert.Empty(t, notify.Toasts(), "invalid forms never reach the server")

	// A second console saved first; this page still believes nothing exists and POSTs.
	other := NewContactInfoPage(client, PageDeps{})
	other.Edit(func(f *ContactForm) {
		f.Address = "Elsewhere"
		f.Phone = "1"
		f.Email = "a@b.com"
	})
	require.NoError(t, other.Save(ctx))

	page.Edit(func(f *ContactForm) {
		f.Phone = "2"
		f.Email = "c@d.com"
	})
	require.Error(t, page.Save(ctx))
	toasts := notify.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, ToastError, toasts[0].Kind)
	assert.Equal(t, "Contact info already exists; use PUT to update it", toasts[0].Message)
	assert.False(t, page.Saving())
}

func TestContactInfoPage_ResetDiscardsEdits(t *testing.T) {
	client := newAPIClient(t)
	page := NewContactInfoPage(client, PageDeps{})
	ctx := context.Background()

	page.Edit(func(f *ContactForm) {
		f.Address = "1 Main St"
		f.Phone = "555"
		f.Email = "office@firm.com"
	})
	require.NoError(t, page.Save(ctx))

	page.Edit(func(f *ContactForm) { f.Phone = "unsaved" })
	page.Reset()
	assert.Equal(t, "555", page.Form().Phone)

	empty := NewContactInfoPage(client, PageDeps{})
	empty.Edit(func(f *ContactForm) { f.Phone = "unsaved" })
	empty.Reset()
	assert.Equal(t, ContactForm{}, empty.Form())
}
