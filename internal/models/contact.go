package models

import (
	"strings"

	"lawFirmWebsite/internal/validation"
)

// ContactInfo is the firm's single contact record.
type ContactInfo struct {
	Meta
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	WorkingHours string `json:"workingHours,omitempty"`
}

func (c *ContactInfo) Prepare() error {
	c.Address = validation.SanitizeInput(c.Address)
	c.Phone = validation.SanitizeInput(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.WorkingHours = validation.SanitizeInput(c.WorkingHours)

	return validation.NewValidator().
		ValidateRequired(c.Address, "Address").
		ValidateRequired(c.Phone, "Phone").
		ValidateRequired(c.Email, "Email").
		ValidateEmail(c.Email, "Email").
		Err()
}

// AddressLines splits a multi-line address for display, dropping blank lines.
func (c ContactInfo) AddressLines() []string {
	return nonEmptyLines(c.Address)
}

// HoursLines splits working hours the same way.
func (c ContactInfo) HoursLines() []string {
	return nonEmptyLines(c.WorkingHours)
}

// PhoneHref is the tel: link for the phone number, keeping only dialable characters.
func (c ContactInfo) PhoneHref() string {
	var b strings.Builder
	for _, r := range c.Phone {
		if (r >= '0' && r <= '9') || (r == '+' && b.Len() == 0) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "tel:" + b.String()
}

func (c ContactInfo) EmailHref() string {
	if c.Email == "" {
		return ""
	}
	return "mailto:" + c.Email
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
