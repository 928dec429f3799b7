package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/testutil"
)

const siteTOML = `
[[carousel]]
title = "Trusted counsel"
image = "/static/img/hero-default.svg"
cta_text = "Book a consultation"
cta_link = "#contact"

[[carousel]]
title = "Hidden for now"
image = "/uploads/later.png"
active = false

[[services]]
title = "Family Law"
description = "Divorce, custody and support"
order = 10

[[projects]]
title = "Estate recovered"
description = "Probate dispute resolved"
features = ["Mediation", "Appeal"]
tech_stack = ["Probate"]

[contact]
address = "1 Main St\nSpringfield"
phone = "+1 555 010 2030"
email = "office@firm.com"
working_hours = "Mon-Fri 9-5"

[[admins]]
email = "Partner@Firm.com"
name = "Pat Partner"
`

func TestLoad(t *testing.T) {
	doc, err := Load(strings.NewReader(siteTOML))
	require.NoError(t, err)

	require.Len(t, doc.Carousel, 2)
	assert.Equal(t, "Book a consultation", doc.Carousel[0].CTAText)
	assert.Nil(t, doc.Carousel[0].Active)
	require.NotNil(t, doc.Carousel[1].Active)
	assert.False(t, *doc.Carousel[1].Active)
	assert.Equal(t, []string{"Mediation", "Appeal"}, doc.Projects[0].Features)
	require.NotNil(t, doc.Contact)
	assert.Equal(t, "Mon-Fri 9-5", doc.Contact.WorkingHours)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(strings.NewReader("[[carousel]\ntitle = "))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("[[carousel]]\ntitel = \"typo\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "titel")
}

func TestApply(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	doc, err := Load(strings.NewReader(siteTOML))
	require.NoError(t, err)

	report, err := Apply(ctx, store, doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"carousel": 2, "services": 1, "projects": 1, "contact": 1, "admins": 1}, report.Inserted)
	assert.Empty(t, report.Skipped)

	slides, err := store.Carousel.List(ctx, database.ListOptions{})
	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Equal(t, 1, slides[0].Order)
	assert.True(t, slides[0].IsActive)
	assert.Equal(t, 2, slides[1].Order)
	assert.False(t, slides[1].IsActive)

	svcs, err := store.Services.List(ctx, database.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 10, svcs[0].Order)
	assert.Equal(t, models.DefaultStyleType, svcs[0].StyleType)

	admin, err := store.Users.FindByEmail(ctx, "partner@firm.com")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, admin.Role)
}

func TestApply_SkipsPopulatedCollections(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	existing := models.CarouselSlide{Title: "Mine", Image: "/uploads/mine.png", IsActive: true}
	require.NoError(t, store.Carousel.Create(ctx, &existing))

	doc, err := Load(strings.NewReader(siteTOML))
	require.NoError(t, err)

	report, err := Apply(ctx, store, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"carousel"}, report.Skipped)
	assert.NotContains(t, report.Inserted, "carousel")

	count, err := store.Carousel.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A second run inserts nothing new.
	report, err = Apply(ctx, store, doc)
	require.NoError(t, err)
	assert.Empty(t, report.Inserted)
	assert.ElementsMatch(t, []string{"carousel", "services", "projects", "contact"}, report.Skipped)
}

func TestApply_InvalidRecordRollsBack(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	doc := &Document{
		Carousel: []Slide{{Title: "Fine", Image: "/a.png"}},
		Services: []Service{{Title: "No description"}},
	}

	_, err := Apply(ctx, store, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "services #1")
	assert.Contains(t, err.Error(), "Description is required")

	count, err := store.Carousel.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "the whole seed runs in one transaction")
}

func TestApply_OverlayOpacity(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	doc, err := Load(strings.NewReader(`
[[services]]
title = "Default overlay"
description = "d"

[[services]]
title = "No overlay"
description = "d"
overlay_opacity = 0.0
`))
	require.NoError(t, err)

	_, err = Apply(ctx, store, doc)
	require.NoError(t, err)

	services, err := store.Services.List(ctx, database.ListOptions{})
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, models.DefaultOverlayOpacity, services[0].OverlayOpacity)
	assert.Equal(t, 0.0, services[1].OverlayOpacity)
}
