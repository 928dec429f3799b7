package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/testutil"
)

func TestRepository_CreateAssignsMeta(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	slide := models.CarouselSlide{Title: "Welcome", Image: "/uploads/a.png", Order: 1, IsActive: true}
	require.NoError(t, store.Carousel.Create(ctx, &slide))

	assert.Equal(t, "id-0001", slide.ID)
	assert.False(t, slide.CreatedAt.IsZero())
	assert.True(t, slide.CreatedAt.Equal(slide.UpdatedAt))

	got, err := store.Carousel.Get(ctx, slide.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", got.Title)
	assert.True(t, got.IsActive)
	assert.True(t, got.CreatedAt.Equal(slide.CreatedAt))
}

func TestRepository_ListOrdering(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, s := range []models.CarouselSlide{
		{Title: "third", Image: "/c.png", Order: 2},
		{Title: "first", Image: "/a.png", Order: 1},
		{Title: "second", Image: "/b.png", Order: 1},
	} {
		s := s
		require.NoError(t, store.Carousel.Create(ctx, &s))
	}

	slides, err := store.Carousel.List(ctx, database.ListOptions{})
	require.NoError(t, err)
	require.Len(t, slides, 3)

	// Equal order values fall back to id ascending.
	assert.Equal(t, []string{"first", "second", "third"}, []string{slides[0].Title, slides[1].Title, slides[2].Title})
}

func TestRepository_ListVisibleOnly(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	active := models.Project{Title: "Live", Description: "d", IsActive: true, Features: models.StringList{"a"}}
	hidden := models.Project{Title: "Draft", Description: "d"}
	require.NoError(t, store.Projects.Create(ctx, &active))
	require.NoError(t, store.Projects.Create(ctx, &hidden))

	all, err := store.Projects.List(ctx, database.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := store.Projects.List(ctx, database.ListOptions{VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Live", visible[0].Title)
	assert.Equal(t, models.StringList{"a"}, visible[0].Features)
	assert.Equal(t, models.StringList{}, all[1].TechStack)
}

func TestRepository_InboxNewestFirst(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, subject := range []string{"older", "newer"} {
		e := models.Enquiry{Name: "n", Email: "n@example.com", Subject: subject, Message: "m", Status: models.EnquiryNew}
		require.NoError(t, store.Enquiries.Create(ctx, &e))
	}

	list, err := store.Enquiries.List(ctx, database.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Subject)
}

func TestRepository_UpdatePreservesCreatedAt(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	svc := models.Service{Title: "Tax", Description: "d", TextColor: "white", OverlayOpacity: 0.5, StyleType: "default"}
	require.NoError(t, store.Services.Create(ctx, &svc))

	replacement := models.Service{Title: "Tax law", Description: "new", TextColor: "black", OverlayOpacity: 0.2, StyleType: "default"}
	require.NoError(t, store.Services.Update(ctx, svc.ID, &replacement))

	assert.Equal(t, svc.ID, replacement.ID)
	assert.True(t, replacement.CreatedAt.Equal(svc.CreatedAt))
	assert.True(t, replacement.UpdatedAt.After(svc.UpdatedAt))
	assert.Equal(t, "Tax law", replacement.Title)
	assert.Equal(t, 0.2, replacement.OverlayOpacity)
}

func TestRepository_NotFound(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := store.Reviews.Get(ctx, "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)

	r := models.Review{Author: "a", Content: "c", Rating: 4}
	assert.ErrorIs(t, store.Reviews.Update(ctx, "missing", &r), database.ErrNotFound)
	assert.ErrorIs(t, store.Reviews.Delete(ctx, "missing"), database.ErrNotFound)
}

func TestRepository_DeleteAndCount(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	a := models.AboutSection{Title: "t", Content: "c", Image: "/i.png", Layout: "image-left"}
	require.NoError(t, store.About.Create(ctx, &a))

	n, err := store.About.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.About.Delete(ctx, a.ID))
	n, err = store.About.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRepository_ZeroOverlayOpacityIsStored(t *testing.T) {
	store := testutil.NewTestStore(t)
	ctx := context.Background()

	svc := models.Service{Title: "T", Description: "D", OverlayOpacity: 0}
	require.NoError(t, svc.Prepare())
	require.NoError(t, store.Services.Create(ctx, &svc))

	got, err := store.Services.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.OverlayOpacity)
}
