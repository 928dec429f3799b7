package models

import (
	"encoding/json"

	"lawFirmWebsite/internal/validation"
)

// CarouselSlide is one frame of the home page hero carousel.
type CarouselSlide struct {
	Meta
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CTAText     string `json:"ctaText"`
	CTALink     string `json:"ctaLink,omitempty"`
	Order       int    `json:"order"`
	IsActive    bool   `json:"isActive"`
}

func (s *CarouselSlide) Prepare() error {
	s.Title = validation.SanitizeInput(s.Title)
	s.Subtitle = validation.SanitizeInput(s.Subtitle)
	s.Description = validation.SanitizeInput(s.Description)
	s.Image = validation.SanitizeInput(s.Image)
	s.CTAText = validation.SanitizeInput(s.CTAText)
	s.CTALink = validation.SanitizeInput(s.CTALink)

	return validation.NewValidator().
		ValidateRequired(s.Title, "Title").
		ValidateLength(s.Title, "Title", 0, 200).
		ValidateRequired(s.Image, "Image").
		ValidateLink(s.Image, "Image").
		ValidateLink(s.CTALink, "CTA link").
		Err()
}

// Service is a practice-area tile with optional detail page.
type Service struct {
	Meta
	Title               string  `json:"title"`
	Subtitle            string  `json:"subtitle,omitempty"`
	Description         string  `json:"description"`
	DetailedDescription string  `json:"detailedDescription,omitempty"`
	BackgroundImage     string  `json:"backgroundImage,omitempty"`
	CTAText             string  `json:"ctaText,omitempty"`
	CTALink             string  `json:"ctaLink,omitempty"`
	TextColor           string  `json:"textColor"`
	OverlayOpacity      float64 `json:"overlayOpacity"`
	StyleType           string  `json:"styleType"`
	Icon                string  `json:"icon,omitempty"`
	Order               int     `json:"order"`
	IsActive            bool    `json:"isActive"`
}

const (
	DefaultTextColor      = "white"
	DefaultOverlayOpacity = 0.5
	DefaultStyleType      = "default"
	DefaultAboutLayout    = "image-left"
)

func (s *Service) Prepare() error {
	s.Title = validation.SanitizeInput(s.Title)
	s.Description = validation.SanitizeInput(s.Description)
	if s.TextColor == "" {
		s.TextColor = DefaultTextColor
	}
	if s.StyleType == "" {
		s.StyleType = DefaultStyleType
	}

	return validation.NewValidator().
		ValidateRequired(s.Title, "Title").
		ValidateRequired(s.Description, "Description").
		ValidateLink(s.BackgroundImage, "Background image").
		ValidateLink(s.CTALink, "CTA link").
		ValidateFloatRange(s.OverlayOpacity, "Overlay opacity", 0, 1).
		Err()
}

// UnmarshalJSON defaults overlayOpacity only when the field is absent; an explicit 0 is kept.
func (s *Service) UnmarshalJSON(data []byte) error {
	type plain Service
	p := plain{OverlayOpacity: DefaultOverlayOpacity}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Service(p)
	return nil
}

// Content is a generic hero or section block.
type Content struct {
	Meta
	Title           string  `json:"title"`
	Subtitle        string  `json:"subtitle,omitempty"`
	Description     string  `json:"description"`
	BackgroundImage string  `json:"backgroundImage"`
	CTAText         string  `json:"ctaText,omitempty"`
	CTALink         string  `json:"ctaLink,omitempty"`
	TextColor       string  `json:"textColor"`
	OverlayOpacity  float64 `json:"overlayOpacity"`
	Order           int     `json:"order"`
	IsActive        bool    `json:"isActive"`
}

func (c *Content) Prepare() error {
	c.Title = validation.SanitizeInput(c.Title)
	c.Description = validation.SanitizeInput(c.Description)
	if c.TextColor == "" {
		c.TextColor = DefaultTextColor
	}

	return validation.NewValidator().
		ValidateRequired(c.Title, "Title").
		ValidateRequired(c.Description, "Description").
		ValidateRequired(c.BackgroundImage, "Background image").
		ValidateLink(c.BackgroundImage, "Background image").
		ValidateLink(c.CTALink, "CTA link").
		ValidateFloatRange(c.OverlayOpacity, "Overlay opacity", 0, 1).
		Err()
}

func (c *Content) UnmarshalJSON(data []byte) error {
	type plain Content
	p := plain{OverlayOpacity: DefaultOverlayOpacity}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Content(p)
	return nil
}

// AboutSection is a block of the "about the firm" page section.
type AboutSection struct {
	Meta
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Layout   string `json:"layout"`
	Order    int    `json:"order"`
	IsActive bool   `json:"isActive"`
}

func (a *AboutSection) Prepare() error {
	a.Title = validation.SanitizeInput(a.Title)
	a.Content = validation.SanitizeInput(a.Content)
	if a.Layout == "" {
		a.Layout = DefaultAboutLayout
	}

	return validation.NewValidator().
		ValidateRequired(a.Title, "Title").
		ValidateRequired(a.Content, "Content").
		ValidateRequired(a.Image, "Image").
		ValidateLink(a.Image, "Image").
		ValidateOneOf(a.Layout, "Layout", "image-left", "image-right", "full-width").
		Err()
}

// Project is a portfolio entry. Features and TechStack travel as JSON arrays.
type Project struct {
	Meta
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Features    StringList `json:"features"`
	TechStack   StringList `json:"techStack"`
	Image       string     `json:"image,omitempty"`
	GithubURL   string     `json:"githubUrl,omitempty"`
	DemoURL     string     `json:"demoUrl,omitempty"`
	Order       int        `json:"order"`
	IsActive    bool       `json:"isActive"`
}

func (p *Project) Prepare() error {
	p.Title = validation.SanitizeInput(p.Title)
	p.Description = validation.SanitizeInput(p.Description)
	if p.Features == nil {
		p.Features = StringList{}
	}
	if p.TechStack == nil {
		p.TechStack = StringList{}
	}

	return validation.NewValidator().
		ValidateRequired(p.Title, "Title").
		ValidateRequired(p.Description, "Description").
		ValidateLink(p.Image, "Image").
		ValidateURL(p.GithubURL, "GitHub URL", "http", "https").
		ValidateURL(p.DemoURL, "Demo URL", "http", "https").
		Err()
}
