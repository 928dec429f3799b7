// Package seed loads the initial site content from a TOML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/models"
)

// Document is a seed file. Collections are arrays of tables, e.g. [[carousel]]; contact is a
// single table.
type Document struct {
	Carousel []Slide   `toml:"carousel"`
	Services []Service `toml:"services"`
	Content  []Content `toml:"content"`
	About    []About   `toml:"about"`
	Projects []Project `toml:"projects"`
	Contact  *Contact  `toml:"contact"`
	Admins   []Admin   `toml:"admins"`
}

// Active defaults to true when a record leaves it out.
type Slide struct {
	Title       string `toml:"title"`
	Subtitle    string `toml:"subtitle"`
	Description string `toml:"description"`
	Image       string `toml:"image"`
	CTAText     string `toml:"cta_text"`
	CTALink     string `toml:"cta_link"`
	Order       int    `toml:"order"`
	Active      *bool  `toml:"active"`
}

type Service struct {
	Title               string   `toml:"title"`
	Subtitle            string   `toml:"subtitle"`
	Description         string   `toml:"description"`
	DetailedDescription string   `toml:"detailed_description"`
	BackgroundImage     string   `toml:"background_image"`
	CTAText             string   `toml:"cta_text"`
	CTALink             string   `toml:"cta_link"`
	TextColor           string   `toml:"text_color"`
	OverlayOpacity      *float64 `toml:"overlay_opacity"`
	StyleType           string   `toml:"style_type"`
	Icon                string   `toml:"icon"`
	Order               int      `toml:"order"`
	Active              *bool    `toml:"active"`
}

type Content struct {
	Title           string   `toml:"title"`
	Subtitle        string   `toml:"subtitle"`
	Description     string   `toml:"description"`
	BackgroundImage string   `toml:"background_image"`
	CTAText         string   `toml:"cta_text"`
	CTALink         string   `toml:"cta_link"`
	TextColor       string   `toml:"text_color"`
	OverlayOpacity  *float64 `toml:"overlay_opacity"`
	Order           int      `toml:"order"`
	Active          *bool    `toml:"active"`
}

type About struct {
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
	Content  string `toml:"content"`
	Image    string `toml:"image"`
	Layout   string `toml:"layout"`
	Order    int    `toml:"order"`
	Active   *bool  `toml:"active"`
}

type Project struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Features    []string `toml:"features"`
	TechStack   []string `toml:"tech_stack"`
	Image       string   `toml:"image"`
	GithubURL   string   `toml:"github_url"`
	DemoURL     string   `toml:"demo_url"`
	Order       int      `toml:"order"`
	Active      *bool    `toml:"active"`
}

type Contact struct {
	Address      string `toml:"address"`
	Phone        string `toml:"phone"`
	Email        string `toml:"email"`
	WorkingHours string `toml:"working_hours"`
}

type Admin struct {
	Email string `toml:"email"`
	Name  string `toml:"name"`
	Role  string `toml:"role"`
}

// Load decodes a seed document. Unknown keys are rejected so typos do not silently drop content.
func Load(r io.Reader) (*Document, error) {
	var doc Document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown seed keys: %v", undecoded)
	}
	return &doc, nil
}

func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("reading seed from %s: %w", path, err)
	}
	return doc, nil
}

// Report says what Apply did per collection.
type Report struct {
	Inserted map[string]int
	// Skipped lists collections left alone because they already held records.
	Skipped []string
}

// Apply inserts the document into the collections that are still empty, all in one transaction.
// Admins are added unless their email is already registered.
func Apply(ctx context.Context, store *database.Store, doc *Document) (*Report, error) {
	report := &Report{Inserted: map[string]int{}}

	err := store.WithTransaction(ctx, func(tx *database.Store) error {
		if err := seedCollection(ctx, tx.Carousel, "carousel", slides(doc.Carousel), report); err != nil {
			return err
		}
		if err := seedCollection(ctx, tx.Services, "services", services(doc.Services), report); err != nil {
			return err
		}
		if err := seedCollection(ctx, tx.Content, "content", contents(doc.Content), report); err != nil {
			return err
		}
		if err := seedCollection(ctx, tx.About, "about", abouts(doc.About), report); err != nil {
			return err
		}
		if err := seedCollection(ctx, tx.Projects, "projects", projects(doc.Projects), report); err != nil {
			return err
		}
		if err := seedContact(ctx, tx, doc.Contact, report); err != nil {
			return err
		}
		return seedAdmins(ctx, tx, doc.Admins, report)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

type preparer[T any] interface {
	*T
	Prepare() error
}

func seedCollection[T any, P preparer[T]](ctx context.Context, repo *database.SQLRepository[T], name string, records []T, report *Report) error {
	if len(records) == 0 {
		return nil
	}

	existing, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting %s: %w", name, err)
	}
	if existing > 0 {
		report.Skipped = append(report.Skipped, name)
		return nil
	}

	for i := range records {
		record := P(&records[i])
		if err := record.Prepare(); err != nil {
			return fmt.Errorf("%s #%d: %w", name, i+1, err)
		}
		if err := repo.Create(ctx, &records[i]); err != nil {
			return fmt.Errorf("inserting %s #%d: %w", name, i+1, err)
		}
	}
	report.Inserted[name] = len(records)
	return nil
}

func seedContact(ctx context.Context, tx *database.Store, contact *Contact, report *Report) error {
	if contact == nil {
		return nil
	}

	current, err := tx.ContactInfo.Current(ctx)
	if err != nil {
		return fmt.Errorf("loading contact info: %w", err)
	}
	if current != nil {
		report.Skipped = append(report.Skipped, "contact")
		return nil
	}

	info := models.ContactInfo{
		Address:      contact.Address,
		Phone:        contact.Phone,
		Email:        contact.Email,
		WorkingHours: contact.WorkingHours,
	}
	if err := info.Prepare(); err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	if err := tx.ContactInfo.Create(ctx, &info); err != nil {
		return fmt.Errorf("inserting contact info: %w", err)
	}
	report.Inserted["contact"] = 1
	return nil
}

func seedAdmins(ctx context.Context, tx *database.Store, admins []Admin, report *Report) error {
	for i, a := range admins {
		user := models.User{Email: a.Email, Name: a.Name, Role: a.Role}
		if err := user.Prepare(); err != nil {
			return fmt.Errorf("admins #%d: %w", i+1, err)
		}

		_, err := tx.Users.FindByEmail(ctx, user.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("looking up admin %s: %w", user.Email, err)
		}

		if err := tx.Users.Create(ctx, &user); err != nil {
			return fmt.Errorf("inserting admin %s: %w", user.Email, err)
		}
		report.Inserted["admins"]++
	}
	return nil
}

func active(flag *bool) bool {
	return flag == nil || *flag
}

// order falls back to the position in the file.
// opacity defaults a missing overlay_opacity; an explicit 0 is kept.
func opacity(value *float64) float64 {
	if value == nil {
		return models.DefaultOverlayOpacity
	}
	return *value
}

func order(value, index int) int {
	if value != 0 {
		return value
	}
	return index + 1
}

func slides(in []Slide) []models.CarouselSlide {
	out := make([]models.CarouselSlide, len(in))
	for i, s := range in {
		out[i] = models.CarouselSlide{
			Title:       s.Title,
			Subtitle:    s.Subtitle,
			Description: s.Description,
			Image:       s.Image,
			CTAText:     s.CTAText,
			CTALink:     s.CTALink,
			Order:       order(s.Order, i),
			IsActive:    active(s.Active),
		}
	}
	return out
}

func services(in []Service) []models.Service {
	out := make([]models.Service, len(in))
	for i, s := range in {
		out[i] = models.Service{
			Title:               s.Title,
			Subtitle:            s.Subtitle,
			Description:         s.Description,
			DetailedDescription: s.DetailedDescription,
			BackgroundImage:     s.BackgroundImage,
			CTAText:             s.CTAText,
			CTALink:             s.CTALink,
			TextColor:           s.TextColor,
			OverlayOpacity:      opacity(s.OverlayOpacity),
			StyleType:           s.StyleType,
			Icon:                s.Icon,
			Order:               order(s.Order, i),
			IsActive:            active(s.Active),
		}
	}
	return out
}

func contents(in []Content) []models.Content {
	out := make([]models.Content, len(in))
	for i, c := range in {
		out[i] = models.Content{
			Title:           c.Title,
			Subtitle:        c.Subtitle,
			Description:     c.Description,
			BackgroundImage: c.BackgroundImage,
			CTAText:         c.CTAText,
			CTALink:         c.CTALink,
			TextColor:       c.TextColor,
			OverlayOpacity:  opacity(c.OverlayOpacity),
			Order:           order(c.Order, i),
			IsActive:        active(c.Active),
		}
	}
	return out
}

func abouts(in []About) []models.AboutSection {
	out := make([]models.AboutSection, len(in))
	for i, a := range in {
		out[i] = models.AboutSection{
			Title:    a.Title,
			Subtitle: a.Subtitle,
			Content:  a.Content,
			Image:    a.Image,
			Layout:   a.Layout,
			Order:    order(a.Order, i),
			IsActive: active(a.Active),
		}
	}
	return out
}

func projects(in []Project) []models.Project {
	out := make([]models.Project, len(in))
	for i, p := range in {
		out[i] = models.Project{
			Title:       p.Title,
			Description: p.Description,
			Features:    p.Features,
			TechStack:   p.TechStack,
			Image:       p.Image,
			GithubURL:   p.GithubURL,
			DemoURL:     p.DemoURL,
			Order:       order(p.Order, i),
			IsActive:    active(p.Active),
		}
	}
	return out
}
