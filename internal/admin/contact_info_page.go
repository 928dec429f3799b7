package admin

import (
	"context"
	"errors"
	"strings"
	"sync"

	"lawFirmWebsite/internal/logging"
	"lawFirmWebsite/internal/models"
)

var ErrSaveInProgress = errors.New("save already in progress")

// ContactStore is the singleton contact-info endpoint. *Singleton[models.ContactInfo] satisfies it.
type ContactStore interface {
	Get(ctx context.Context) (*models.ContactInfo, error)
	Create(ctx context.Context, info models.ContactInfo) (models.ContactInfo, error)
	Update(ctx context.Context, info models.ContactInfo) (models.ContactInfo, error)
}

type ContactForm struct {
	Address      string
	Phone        string
	Email        string
	WorkingHours string
}

func (f ContactForm) record() models.ContactInfo {
	return models.ContactInfo{
		Address:      strings.TrimSpace(f.Address),
		Phone:        strings.TrimSpace(f.Phone),
		Email:        strings.TrimSpace(f.Email),
		WorkingHours: strings.TrimSpace(f.WorkingHours),
	}
}

func contactForm(info *models.ContactInfo) ContactForm {
	if info == nil {
		return ContactForm{}
	}
	return ContactForm{
		Address:      info.Address,
		Phone:        info.Phone,
		Email:        info.Email,
		WorkingHours: info.WorkingHours,
	}
}

// ContactPreview is the contact block as the public site would show it.
type ContactPreview struct {
	AddressLines []string
	Phone        string
	PhoneHref    string
	Email        string
	EmailHref    string
	HoursLines   []string
}

// ContactInfoPage edits the single contact-info record. Saving creates it the first time and
// replaces it afterwards; outcomes are reported as toasts.
type ContactInfoPage struct {
	store  ContactStore
	notify Notifier
	logger *logging.Logger

	mu     sync.Mutex
	record *models.ContactInfo
	form   ContactForm
	saving bool
}

func NewContactInfoPage(c *Client, deps PageDeps) *ContactInfoPage {
	return NewContactInfoPageWithStore(NewSingleton[models.ContactInfo](c, "/api/contact-info"), deps)
}

func NewContactInfoPageWithStore(store ContactStore, deps PageDeps) *ContactInfoPage {
	deps = deps.withDefaults()
	return &ContactInfoPage{store: store, notify: deps.Notify, logger: deps.Logger}
}

// Fetch loads the saved record into the form. On failure the error is logged and the form is
// left as it was.
func (p *ContactInfoPage) Fetch(ctx context.Context) error {
	info, err := p.store.Get(ctx)
	if err != nil {
		p.logger.WithError(err).Warn("Failed to fetch contact info")
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.record = info
	p.form = contactForm(info)
	return nil
}

// Exists reports whether a record has been saved, i.e. whether Save will PUT.
func (p *ContactInfoPage) Exists() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.record != nil
}

func (p *ContactInfoPage) Form() ContactForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

func (p *ContactInfoPage) Edit(fn func(form *ContactForm)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.form)
}

// Reset discards unsaved edits, going back to the last fetched or saved record.
func (p *ContactInfoPage) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = contactForm(p.record)
}

func (p *ContactInfoPage) Saving() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saving
}

// Preview is derived from the current form alone.
func (p *ContactInfoPage) Preview() ContactPreview {
	info := p.Form().record()
	return ContactPreview{
		AddressLines: info.AddressLines(),
		Phone:        info.Phone,
		PhoneHref:    info.PhoneHref(),
		Email:        info.Email,
		EmailHref:    info.EmailHref(),
		HoursLines:   info.HoursLines(),
	}
}

func (p *ContactInfoPage) Save(ctx context.Context) error {
	p.mu.Lock()
	if p.saving {
		p.mu.Unlock()
		return ErrSaveInProgress
	}
	exists := p.record != nil
	info := p.form.record()
	p.saving = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.saving = false
		p.mu.Unlock()
	}()

	check := info
	if err := check.Prepare(); err != nil {
		p.notify.Alert(err.Error())
		return err
	}

	var (
		saved models.ContactInfo
		err   error
	)
	if exists {
		saved, err = p.store.Update(ctx, info)
	} else {
		saved, err = p.store.Create(ctx, info)
	}
	if err != nil {
		p.logger.WithError(err).WithField("exists", exists).Error("Failed to save contact info")
		p.notify.Toast(NewToast(ToastError, failureMessage(err, "Failed to save contact information")))
		return err
	}

	p.mu.Lock()
	p.record = &saved
	p.form = contactForm(&saved)
	p.mu.Unlock()

	p.notify.Toast(NewToast(ToastSuccess, "Contact information saved successfully"))
	return nil
}
