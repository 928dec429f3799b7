// Package uploads stores admin-uploaded images and hands back the path the site serves them from.
package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// Store persists one uploaded file under name and returns the public path or URL for it.
type Store interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

var (
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrEmpty           = errors.New("file is empty")
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is an upload that passed size and type checks.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

// ReadImage reads at most maxBytes from r and sniffs the content type from the bytes themselves,
// ignoring whatever the client claimed.
func ReadImage(r io.Reader, maxBytes int64) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return &Image{Data: data, ContentType: contentType, Ext: ext}, nil
}

// Reader returns a fresh reader over the image bytes.
func (i *Image) Reader() io.Reader {
	return bytes.NewReader(i.Data)
}

// NewFileName returns a collision-free file name with the given extension.
func NewFileName(ext string) string {
	return uuid.NewString() + ext
}

// SaveImage names img and writes it to store.
func SaveImage(ctx context.Context, store Store, img *Image) (string, error) {
	return store.Save(ctx, NewFileName(img.Ext), img.ContentType, img.Reader())
}
