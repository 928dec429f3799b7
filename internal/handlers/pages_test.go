package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawFirmWebsite/internal/models"
)

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHomePage_DefaultSlideWithoutControls(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "/static/img/hero-default.svg")
	assert.Contains(t, body, "Trusted Legal Counsel")
	assert.NotContains(t, body, `class="hero-prev"`)
	assert.NotContains(t, body, "Go to slide")
}

func TestHomePage_RendersSlidesAndRefreshesAfterWrites(t *testing.T) {
	ts := newTestServer(t)

	// Prime the cache before any slide exists.
	rec := ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for i, title := range []string{"Estate Planning", "Business Disputes", "Hidden Slide"} {
		rec := ts.do(t, http.MethodPost, "/api/carousel", map[string]interface{}{
			"title":    title,
			"image":    "/uploads/slide.png",
			"order":    i + 1,
			"isActive": title != "Hidden Slide",
		}, withAdminToken())
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "Estate Planning")
	assert.Contains(t, body, "Business Disputes")
	assert.NotContains(t, body, "Hidden Slide")
	assert.NotContains(t, body, "Trusted Legal Counsel")
	assert.Equal(t, 2, strings.Count(body, "Go to slide"))
	assert.Equal(t, 1, strings.Count(body, "hero-slide active"))
	assert.Contains(t, body, `data-interval="5000"`)
	assert.Less(t, strings.Index(body, "Estate Planning"), strings.Index(body, "Business Disputes"))
}

func TestHomePage_ImagesFallBackWhenTheyFailToLoad(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/carousel", map[string]interface{}{
		"title": "Gone", "image": "/uploads/deleted.png", "order": 1, "isActive": true,
	}, withAdminToken())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = ts.do(t, http.MethodPost, "/api/projects", map[string]interface{}{
		"title": "Merger", "description": "Closed in six weeks", "image": "/uploads/missing.png", "isActive": true,
	}, withAdminToken())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	imgs := strings.Count(body, "<img ")
	require.Equal(t, 2, imgs)
	assert.Equal(t, imgs, strings.Count(body, "/static/img/placeholder.svg"))
	assert.Equal(t, imgs, strings.Count(body, "onerror="))
}

func TestHomePage_ShowsOnlyApprovedReviews(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/reviews", map[string]interface{}{
		"author": "Dana", "content": "They settled my case quickly.", "rating": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	review := decodeBody[models.Review](t, rec)

	rec = ts.do(t, http.MethodGet, "/", nil)
	assert.NotContains(t, rec.Body.String(), "They settled my case quickly.")

	review.IsApproved = true
	rec = ts.do(t, http.MethodPut, "/api/reviews/"+review.ID, review, withAdminToken())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/", nil)
	body := rec.Body.String()
	assert.Contains(t, body, "They settled my case quickly.")
	assert.Contains(t, body, "★★★★☆")
}

func TestHomePage_ContactLinks(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/contact-info", map[string]interface{}{
		"address": "1 Main St\nSpringfield",
		"phone":   "+1 (555) 010-2030",
		"email":   "office@firm.com",
	}, withAdminToken())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/", nil)
	body := rec.Body.String()
	assert.Contains(t, body, `href="tel:`)
	assert.Contains(t, body, `15550102030"`)
	assert.Contains(t, body, `href="mailto:office@firm.com"`)
	assert.Contains(t, body, "1 Main St<br>Springfield<br>")
}

func TestServicePage(t *testing.T) {
	ts := newTestServer(t)

	create := func(title string, active bool) string {
		rec := ts.do(t, http.MethodPost, "/api/services", map[string]interface{}{
			"title":               title,
			"description":         "Short",
			"detailedDescription": "First paragraph.\n\nSecond paragraph.",
			"isActive":            active,
		}, withAdminToken())
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return decodeBody[models.Service](t, rec).ID
	}
	active := create("Real Estate", true)
	inactive := create("Maritime", false)

	rec := ts.do(t, http.MethodGet, "/services/"+active, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Real Estate | Law Office</title>")
	assert.Contains(t, rec.Body.String(), "<p>Second paragraph.</p>")

	rec = ts.do(t, http.MethodGet, "/services/"+inactive, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/services/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "That service could not be found.")
}

func TestUnknownPage(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/no/such/page", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestStaticAssets(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/static/css/site.css", "/static/js/site.js", "/static/img/hero-default.svg", "/static/img/placeholder.svg"} {
		rec := ts.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAdminDashboard(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = ts.do(t, http.MethodPost, "/api/projects", map[string]interface{}{"title": "P", "description": "D"}, withAdminToken())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cookie := ts.sessionCookie(t, "partner@firm.com", "csrf-abc", time.Now())
	rec = ts.do(t, http.MethodGet, "/admin", nil, withCookie(cookie))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "partner@firm.com")
	assert.Contains(t, body, `<meta name="csrf-token" content="csrf-abc">`)
	assert.Contains(t, body, "<td>Projects</td><td>1</td>")
	assert.Contains(t, body, "No contact information has been saved yet.")
}
