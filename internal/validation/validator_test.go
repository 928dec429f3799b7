package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Required(t *testing.T) {
	v := NewValidator().
		ValidateRequired("  ", "Title").
		ValidateRequired("ok", "Description")

	require.True(t, v.HasErrors())
	assert.Equal(t, []string{"Title is required"}, v.Errors())
}

func TestValidator_Err(t *testing.T) {
	assert.NoError(t, NewValidator().Err())

	err := NewValidator().ValidateRequired("", "Image").ValidateRange(0, "Rating", 1, 5).Err()
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Messages, 2)
	assert.Equal(t, "Image is required; Rating must be at least 1", err.Error())
}

func TestValidator_Email(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{"", true},
		{"client@example.com", true},
		{"first.last+tag@firm.co.uk", true},
		{"not-an-email", false},
		{"a@", false},
	}
	for _, tc := range testCases {
		t.Run(tc.email, func(t *testing.T) {
			v := NewValidator().ValidateEmail(tc.email, "Email")
			assert.Equal(t, !tc.valid, v.HasErrors())
		})
	}
}

func TestValidator_Link(t *testing.T) {
	testCases := []struct {
		value string
		valid bool
	}{
		{"", true},
		{"/uploads/x.png", true},
		{"#contact", true},
		{"https://github.com/firm/site", true},
		{"ftp://example.com/file", false},
		{"javascript:alert(1)", false},
		{"just text", false},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			v := NewValidator().ValidateLink(tc.value, "Link")
			assert.Equal(t, !tc.valid, v.HasErrors(), v.Errors())
		})
	}
}

func TestValidator_OneOfAndFloatRange(t *testing.T) {
	v := NewValidator().
		ValidateOneOf("archived", "Status", "new", "read").
		ValidateFloatRange(1.5, "Overlay opacity", 0, 1)

	assert.Equal(t, []string{
		"Status must be one of: new, read",
		"Overlay opacity must be between 0 and 1",
	}, v.Errors())
}

func TestValidator_SafeText(t *testing.T) {
	assert.False(t, NewValidator().ValidateSafeText("line one\nline two\t", "Message").HasErrors())
	assert.True(t, NewValidator().ValidateSafeText("bad\x00byte", "Message").HasErrors())
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello\nworld", SanitizeInput("  hel\x07lo\nworld \x00 "))
}
