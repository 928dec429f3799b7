package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"lawFirmWebsite/internal/logging"
)

// FallbackImage is previewed while the image field is empty and shown by the public pages when an
// image fails to load.
const FallbackImage = "/static/img/placeholder.svg"

var (
	ErrFormClosed       = errors.New("no form is open")
	ErrUploadInProgress = errors.New("an image upload is still in progress")
	ErrDeleteInProgress = errors.New("delete already in progress")
	ErrCancelled        = errors.New("cancelled")
	ErrRecordNotFound   = errors.New("record not found")
	ErrNoImageField     = errors.New("this form has no image field")
)

type FormMode int

const (
	FormClosed FormMode = iota
	FormCreate
	FormEdit
)

func (m FormMode) String() string {
	switch m {
	case FormCreate:
		return "create"
	case FormEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Collection is the REST surface a page drives. *Resource satisfies it.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id string, record T) (T, error)
	Delete(ctx context.Context, id string) error
}

// ImageUploader stores a file and returns the path to put in an image field. *Client satisfies it.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Codec maps between a record T and its edit form F.
type Codec[T, F any] struct {
	// Noun names one record in prompts and alerts, e.g. "slide".
	Noun string
	// Defaults builds the create form; it sees the current list.
	Defaults func(items []T) F
	ToForm   func(record T) F
	// FromForm validates the form. An error blocks the request and is shown to the admin.
	FromForm func(form F) (T, error)
	ID       func(record T) string
	// Image points at the form's image field; nil when the form has none.
	Image func(form *F) *string
}

// PageDeps are the collaborators shared by every page.
type PageDeps struct {
	Uploader ImageUploader
	Notify   Notifier
	Confirm  Confirmer
	Logger   *logging.Logger
}

func (d PageDeps) withDefaults() PageDeps {
	if d.Notify == nil {
		d.Notify = discardNotifier{}
	}
	if d.Confirm == nil {
		d.Confirm = AlwaysConfirm
	}
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	return d
}

// Page is the state of one entity management screen: the fetched list, at most one open form,
// an upload flag and per-row delete flags. Network calls run without holding the lock so a
// frontend can keep reading state while they are in flight.
type Page[T, F any] struct {
	collection Collection[T]
	codec      Codec[T, F]
	uploader   ImageUploader
	notify     Notifier
	confirm    Confirmer
	logger     *logging.Logger

	mu        sync.Mutex
	items     []T
	mode      FormMode
	editingID string
	form      F
	uploading bool
	deleting  map[string]bool
}

func NewPage[T, F any](collection Collection[T], codec Codec[T, F], deps PageDeps) *Page[T, F] {
	deps = deps.withDefaults()
	return &Page[T, F]{
		collection: collection,
		codec:      codec,
		uploader:   deps.Uploader,
		notify:     deps.Notify,
		confirm:    deps.Confirm,
		logger:     deps.Logger,
		deleting:   make(map[string]bool),
	}
}

func (p *Page[T, F]) Noun() string { return p.codec.Noun }

func (p *Page[T, F]) log() *logging.EntryBuilder {
	return p.logger.WithField("page", p.codec.Noun)
}

// Fetch replaces the list with the server's. On failure the error is only logged and the
// previous list stays.
func (p *Page[T, F]) Fetch(ctx context.Context) error {
	items, err := p.collection.List(ctx)
	if err != nil {
		p.log().WithError(err).Warn("Failed to fetch records")
		return err
	}

	p.mu.Lock()
	p.items = items
	p.mu.Unlock()
	return nil
}

func (p *Page[T, F]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

func (p *Page[T, F]) Find(id string) (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.findLocked(id)
}

func (p *Page[T, F]) findLocked(id string) (T, bool) {
	for _, item := range p.items {
		if p.codec.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (p *Page[T, F]) OpenCreate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.mode = FormCreate
	p.editingID = ""
	p.form = p.codec.Defaults(p.items)
}

func (p *Page[T, F]) OpenEdit(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	record, ok := p.findLocked(id)
	if !ok {
		return fmt.Errorf("%s %s: %w", p.codec.Noun, id, ErrRecordNotFound)
	}
	p.mode = FormEdit
	p.editingID = id
	p.form = p.codec.ToForm(record)
	return nil
}

func (p *Page[T, F]) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *Page[T, F]) closeLocked() {
	var zero F
	p.mode = FormClosed
	p.editingID = ""
	p.form = zero
}

func (p *Page[T, F]) Mode() FormMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

func (p *Page[T, F]) EditingID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editingID
}

// Form returns a copy of the open form.
func (p *Page[T, F]) Form() F {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Edit changes the open form in place.
func (p *Page[T, F]) Edit(fn func(form *F)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mode == FormClosed {
		return ErrFormClosed
	}
	fn(&p.form)
	return nil
}

func (p *Page[T, F]) Uploading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uploading
}

func (p *Page[T, F]) IsDeleting(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deleting[id]
}

// Submit creates or updates the record in the open form. Invalid forms never reach the network.
// On success the list is refetched and the form closes; on failure the form stays open.
func (p *Page[T, F]) Submit(ctx context.Context) error {
	p.mu.Lock()
	if p.mode == FormClosed {
		p.mu.Unlock()
		return ErrFormClosed
	}
	if p.uploading {
		p.mu.Unlock()
		return ErrUploadInProgress
	}
	mode, id, form := p.mode, p.editingID, p.form
	p.mu.Unlock()

	record, err := p.codec.FromForm(form)
	if err != nil {
		p.notify.Alert(err.Error())
		return err
	}

	if mode == FormCreate {
		_, err = p.collection.Create(ctx, record)
	} else {
		_, err = p.collection.Update(ctx, id, record)
	}
	if err != nil {
		p.log().WithError(err).WithFields(map[string]interface{}{
			"mode": mode.String(),
			"id":   id,
		}).Error("Failed to save record")
		p.notify.Alert(failureMessage(err, "Failed to save "+p.codec.Noun))
		return err
	}

	p.Fetch(ctx)

	p.mu.Lock()
	if p.mode == mode && p.editingID == id {
		p.closeLocked()
	}
	p.mu.Unlock()
	return nil
}

// Delete asks for confirmation, then deletes one record. Only that row is flagged as deleting
// while the request runs. The row leaves the list only once the server confirms; a failed delete
// keeps it and alerts.
func (p *Page[T, F]) Delete(ctx context.Context, id string) error {
	if !p.confirm.Confirm(fmt.Sprintf("Are you sure you want to delete this %s?", p.codec.Noun)) {
		return ErrCancelled
	}

	p.mu.Lock()
	if p.deleting[id] {
		p.mu.Unlock()
		return ErrDeleteInProgress
	}
	p.deleting[id] = true
	p.mu.Unlock()

	err := p.collection.Delete(ctx, id)

	p.mu.Lock()
	delete(p.deleting, id)
	if err == nil {
		p.removeLocked(id)
	}
	p.mu.Unlock()

	if err != nil {
		p.log().WithError(err).WithField("id", id).Error("Failed to delete record")
		p.notify.Alert(failureMessage(err, "Failed to delete "+p.codec.Noun))
		return err
	}

	p.Fetch(ctx)
	return nil
}

func (p *Page[T, F]) removeLocked(id string) {
	kept := p.items[:0:0]
	for _, item := range p.items {
		if p.codec.ID(item) != id {
			kept = append(kept, item)
		}
	}
	p.items = kept
}

// UploadImage uploads a file and writes the returned path into the form's image field verbatim.
// Submit is refused while the upload runs. A failed upload leaves the field unchanged.
func (p *Page[T, F]) UploadImage(ctx context.Context, filename string, r io.Reader) error {
	if p.codec.Image == nil || p.uploader == nil {
		return ErrNoImageField
	}

	p.mu.Lock()
	if p.mode == FormClosed {
		p.mu.Unlock()
		return ErrFormClosed
	}
	if p.uploading {
		p.mu.Unlock()
		return ErrUploadInProgress
	}
	p.uploading = true
	p.mu.Unlock()

	path, err := p.uploader.Upload(ctx, filename, r)

	p.mu.Lock()
	p.uploading = false
	if err == nil && p.mode != FormClosed {
		*p.codec.Image(&p.form) = path
	}
	p.mu.Unlock()

	if err != nil {
		p.log().WithError(err).WithField("filename", filename).Error("Failed to upload image")
		p.notify.Alert(failureMessage(err, "Failed to upload image"))
		return err
	}
	return nil
}

// PreviewSrc is the image to preview for the open form. It falls back only when the field is
// empty; whether a non-empty path actually loads is left to the renderer, which the public
// templates handle with an onerror swap to FallbackImage.
func (p *Page[T, F]) PreviewSrc() string {
	if p.codec.Image == nil {
		return FallbackImage
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if src := strings.TrimSpace(*p.codec.Image(&p.form)); src != "" {
		return src
	}
	return FallbackImage
}

// failureMessage prefers the server's own error text.
func failureMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type discardNotifier struct{}

func (discardNotifier) Alert(string) {}
func (discardNotifier) Toast(Toast)  {}
