package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_ScanAndValue(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["a","b"]`))
	assert.Equal(t, StringList{"a", "b"}, l)

	require.NoError(t, l.Scan([]byte(`null`)))
	assert.Equal(t, StringList{}, l)

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)

	assert.Error(t, l.Scan(42))

	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{"Go", "SQL"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Go","SQL"]`, v)
}

func TestProject_JSONShape(t *testing.T) {
	p := Project{Title: "Site", Description: "D"}
	b, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, []any{}, decoded["features"])
	assert.Equal(t, []any{}, decoded["techStack"])
	assert.Contains(t, decoded, "isActive")
	assert.Contains(t, decoded, "order")
}

func TestCarouselSlide_Prepare(t *testing.T) {
	testCases := []struct {
		name    string
		slide   CarouselSlide
		wantErr string
	}{
		{
			name:  "valid",
			slide: CarouselSlide{Title: "Sale", Subtitle: "Now", Description: "D", Image: "/i.jpg", CTAText: "Go", Order: 1, IsActive: true},
		},
		{
			name:    "missing image",
			slide:   CarouselSlide{Title: "Sale"},
			wantErr: "Image is required",
		},
		{
			name:    "missing title",
			slide:   CarouselSlide{Image: "https://cdn.example.com/a.png"},
			wantErr: "Title is required",
		},
		{
			name:    "script link",
			slide:   CarouselSlide{Title: "x", Image: "/a.png", CTALink: "javascript:alert(1)"},
			wantErr: "CTA link must be a valid URL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.slide.Prepare()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestService_PrepareDefaults(t *testing.T) {
	s := Service{Title: "Family Law", Description: "Divorce and custody"}
	require.NoError(t, s.Prepare())

	assert.Equal(t, DefaultTextColor, s.TextColor)
	assert.Equal(t, DefaultStyleType, s.StyleType)
}

func TestService_PrepareKeepsTransparentOverlay(t *testing.T) {
	s := Service{Title: "Family Law", Description: "Divorce and custody", OverlayOpacity: 0}
	require.NoError(t, s.Prepare())
	assert.Equal(t, 0.0, s.OverlayOpacity)

	c := Content{Title: "Hero", Description: "d", BackgroundImage: "/uploads/bg.png", OverlayOpacity: 0}
	require.NoError(t, c.Prepare())
	assert.Equal(t, 0.0, c.OverlayOpacity)
}

func TestOverlayOpacity_DefaultsOnlyWhenAbsent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"absent", `{"title":"T","description":"D"}`, DefaultOverlayOpacity},
		{"explicit zero", `{"title":"T","description":"D","overlayOpacity":0}`, 0},
		{"explicit value", `{"title":"T","description":"D","overlayOpacity":0.8}`, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Service
			require.NoError(t, json.Unmarshal([]byte(tt.body), &s))
			assert.Equal(t, tt.want, s.OverlayOpacity)
			assert.Equal(t, "T", s.Title)

			var c Content
			require.NoError(t, json.Unmarshal([]byte(tt.body), &c))
			assert.Equal(t, tt.want, c.OverlayOpacity)
		})
	}
}

func TestAboutSection_PrepareLayout(t *testing.T) {
	a := AboutSection{Title: "Our story", Content: "Since 1990", Image: "/uploads/a.png"}
	require.NoError(t, a.Prepare())
	assert.Equal(t, DefaultAboutLayout, a.Layout)

	a.Layout = "diagonal"
	assert.Error(t, a.Prepare())
}

func TestEnquiry_PreparePublicResetsStatus(t *testing.T) {
	e := Enquiry{Name: "Ana", Email: "ana@example.com", Subject: "Lease", Message: "Help", Status: EnquiryArchived}
	require.NoError(t, e.PreparePublic())
	assert.Equal(t, EnquiryNew, e.Status)

	e.Status = "escalated"
	assert.Error(t, e.Prepare())
}

func TestReview_Prepare(t *testing.T) {
	r := Review{Author: "Client", Content: "Great", Rating: 6, IsApproved: true}
	assert.Error(t, r.Prepare())

	r.Rating = 5
	require.NoError(t, r.PreparePublic())
	assert.False(t, r.IsApproved)
}

func TestAppointment_Prepare(t *testing.T) {
	a := Appointment{Name: "Bo", Email: "bo@example.com", Phone: "555", Date: "2026-11-02", Time: "14:30", Service: "Estate planning"}
	require.NoError(t, a.Prepare())
	assert.Equal(t, AppointmentPending, a.Status)

	a.Date = "02/11/2026"
	err := a.Prepare()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestContactInfo_Formatting(t *testing.T) {
	c := ContactInfo{
		Address:      "12 High St\r\n\r\nSuite 4 \nSpringfield",
		Phone:        "+1 (555) 010-2030",
		Email:        "office@firm.com",
		WorkingHours: "Mon-Fri 9-5\nSat by appointment",
	}

	assert.Equal(t, []string{"12 High St", "Suite 4", "Springfield"}, c.AddressLines())
	assert.Equal(t, []string{"Mon-Fri 9-5", "Sat by appointment"}, c.HoursLines())
	assert.Equal(t, "tel:+15550102030", c.PhoneHref())
	assert.Equal(t, "mailto:office@firm.com", c.EmailHref())

	assert.Equal(t, "", ContactInfo{}.PhoneHref())
	assert.Equal(t, "", ContactInfo{}.EmailHref())
	assert.Nil(t, ContactInfo{}.AddressLines())
}

func TestUser_Prepare(t *testing.T) {
	u := User{Email: "  Partner@Firm.COM "}
	require.NoError(t, u.Prepare())
	assert.Equal(t, "partner@firm.com", u.Email)
	assert.Equal(t, UserRoleAdmin, u.Role)
}
