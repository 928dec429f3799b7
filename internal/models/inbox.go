package models

import (
	"strings"
	"time"

	"lawFirmWebsite/internal/validation"
)

const (
	EnquiryNew      = "new"
	EnquiryRead     = "read"
	EnquiryReplied  = "replied"
	EnquiryArchived = "archived"

	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Enquiry is a message left through the public contact form.
type Enquiry struct {
	Meta
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *Enquiry) Prepare() error {
	e.Name = validation.SanitizeInput(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Subject = validation.SanitizeInput(e.Subject)
	e.Message = validation.SanitizeInput(e.Message)
	if e.Status == "" {
		e.Status = EnquiryNew
	}

	return validation.NewValidator().
		ValidateRequired(e.Name, "Name").
		ValidateRequired(e.Email, "Email").
		ValidateEmail(e.Email, "Email").
		ValidateRequired(e.Subject, "Subject").
		ValidateRequired(e.Message, "Message").
		ValidateLength(e.Message, "Message", 0, 5000).
		ValidateOneOf(e.Status, "Status", EnquiryNew, EnquiryRead, EnquiryReplied, EnquiryArchived).
		Err()
}

// PreparePublic is used for visitor submissions: the workflow status always starts at "new".
func (e *Enquiry) PreparePublic() error {
	e.Status = EnquiryNew
	return e.Prepare()
}

// Review is a client testimonial awaiting or past moderation.
type Review struct {
	Meta
	Author     string `json:"author"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	IsApproved bool   `json:"isApproved"`
}

func (r *Review) Prepare() error {
	r.Author = validation.SanitizeInput(r.Author)
	r.Content = validation.SanitizeInput(r.Content)

	return validation.NewValidator().
		ValidateRequired(r.Author, "Author").
		ValidateRequired(r.Content, "Content").
		ValidateLength(r.Content, "Content", 0, 2000).
		ValidateRange(r.Rating, "Rating", 1, 5).
		Err()
}

// PreparePublic forces visitor reviews into the moderation queue.
func (r *Review) PreparePublic() error {
	r.IsApproved = false
	return r.Prepare()
}

// Appointment is a consultation booking request.
type Appointment struct {
	Meta
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status"`
}

func (a *Appointment) Prepare() error {
	a.Name = validation.SanitizeInput(a.Name)
	a.Email = strings.TrimSpace(a.Email)
	a.Phone = validation.SanitizeInput(a.Phone)
	a.Service = validation.SanitizeInput(a.Service)
	a.Message = validation.SanitizeInput(a.Message)
	if a.Status == "" {
		a.Status = AppointmentPending
	}

	v := validation.NewValidator().
		ValidateRequired(a.Name, "Name").
		ValidateRequired(a.Email, "Email").
		ValidateEmail(a.Email, "Email").
		ValidateRequired(a.Phone, "Phone").
		ValidateRequired(a.Date, "Date").
		ValidateRequired(a.Time, "Time").
		ValidateRequired(a.Service, "Service").
		ValidateOneOf(a.Status, "Status", AppointmentPending, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted)

	if a.Date != "" {
		if _, err := time.Parse("2006-01-02", a.Date); err != nil {
			v.AddError("Date must be formatted as YYYY-MM-DD")
		}
	}
	if a.Time != "" {
		if _, err := time.Parse("15:04", a.Time); err != nil {
			v.AddError("Time must be formatted as HH:MM")
		}
	}
	return v.Err()
}

func (a *Appointment) PreparePublic() error {
	a.Status = AppointmentPending
	return a.Prepare()
}
