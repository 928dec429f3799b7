// Package validation holds the fluent field validator used by the models before anything is stored.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Error is returned when a record fails validation. Message is safe to show to the admin.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validator collects validation errors
type Validator struct {
	errors []string
}

func NewValidator() *Validator {
	return &Validator{errors: make([]string, 0)}
}

func (v *Validator) AddError(message string) {
	v.errors = append(v.errors, message)
}

func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

func (v *Validator) Errors() []string {
	return v.errors
}

// Err returns nil when valid, otherwise an *Error carrying every message.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return &Error{Messages: append([]string(nil), v.errors...)}
}

// ValidateRequired checks that a string is not blank
func (v *Validator) ValidateRequired(value, field string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(fmt.Sprintf("%s is required", field))
	}
	return v
}

// ValidateLength checks string length constraints; max <= 0 means unbounded
func (v *Validator) ValidateLength(value, field string, min, max int) *Validator {
	length := utf8.RuneCountInString(value)
	if length < min {
		v.AddError(fmt.Sprintf("%s must be at least %d characters long", field, min))
	}
	if max > 0 && length > max {
		v.AddError(fmt.Sprintf("%s must be no more than %d characters long", field, max))
	}
	return v
}

// ValidateEmail validates email format; empty values are left to ValidateRequired
func (v *Validator) ValidateEmail(email, field string) *Validator {
	if email == "" {
		return v
	}
	if !emailRegex.MatchString(email) {
		v.AddError(fmt.Sprintf("%s must be a valid email address", field))
		return v
	}
	if len(email) > 320 {
		v.AddError(fmt.Sprintf("%s is too long (maximum 320 characters)", field))
	}
	return v
}

// ValidateURL accepts absolute URLs with one of allowedSchemes
func (v *Validator) ValidateURL(rawURL, field string, allowedSchemes ...string) *Validator {
	if rawURL == "" {
		return v
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		v.AddError(fmt.Sprintf("%s must be a valid URL", field))
		return v
	}

	if len(allowedSchemes) > 0 && !contains(allowedSchemes, u.Scheme) {
		v.AddError(fmt.Sprintf("%s must use one of the following schemes: %s", field, strings.Join(allowedSchemes, ", ")))
	}
	return v
}

// ValidateLink accepts either a site-relative path ("/uploads/x.png", "#contact") or an http(s) URL.
func (v *Validator) ValidateLink(value, field string) *Validator {
	if value == "" || strings.HasPrefix(value, "/") || strings.HasPrefix(value, "#") {
		return v
	}
	return v.ValidateURL(value, field, "http", "https")
}

func (v *Validator) ValidateRange(value int, field string, min, max int) *Validator {
	if value < min {
		v.AddError(fmt.Sprintf("%s must be at least %d", field, min))
	}
	if value > max {
		v.AddError(fmt.Sprintf("%s must be no more than %d", field, max))
	}
	return v
}

func (v *Validator) ValidateFloatRange(value float64, field string, min, max float64) *Validator {
	if value < min || value > max {
		v.AddError(fmt.Sprintf("%s must be between %g and %g", field, min, max))
	}
	return v
}

// ValidateOneOf checks value against a closed set
func (v *Validator) ValidateOneOf(value, field string, allowed ...string) *Validator {
	if !contains(allowed, value) {
		v.AddError(fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
	}
	return v
}

// ValidateSafeText rejects control characters other than newlines and tabs
func (v *Validator) ValidateSafeText(value, field string) *Validator {
	for _, r := range value {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			v.AddError(fmt.Sprintf("%s contains invalid characters", field))
			return v
		}
	}
	return v
}

// SanitizeInput trims whitespace and strips control characters except newlines and tabs.
func SanitizeInput(input string) string {
	var result strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\r' || r == '\t' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
