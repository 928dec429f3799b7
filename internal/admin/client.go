// Package admin holds the entity management controllers: per-page state machines that list, edit,
// upload and delete site records through the REST API. They know nothing about how they are drawn.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the server. Message is the server's "error" string when it
// sent one, so it can be shown to the admin as-is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the site's admin API with a bearer token.
type Client struct {
	http fastshot.ClientHttpMethods
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	builder := fastshot.NewClient(strings.TrimRight(baseURL, "/"))
	if token != "" {
		builder.Auth().BearerToken(token)
	}

	return &Client{
		http: builder.Config().SetTimeout(timeout).
			Header().Add("Accept", "application/json").
			Build(),
	}
}

func (c *Client) request(method, path string) *fastshot.RequestBuilder {
	switch method {
	case http.MethodPost:
		return c.http.POST(path)
	case http.MethodPut:
		return c.http.PUT(path)
	case http.MethodDelete:
		return c.http.DELETE(path)
	default:
		return c.http.GET(path)
	}
}

// sendJSON issues one request and decodes a 2xx JSON answer into out (when out is non-nil).
func (c *Client) sendJSON(ctx context.Context, method, path string, body, out interface{}) error {
	req := c.request(method, path).Context().Set(ctx)
	if body != nil {
		req = req.Header().Add("Content-Type", "application/json").Body().AsJSON(body)
	}

	resp, err := req.Send()
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return decodeResponse(resp, out)
}

func decodeResponse(resp *fastshot.Response, out interface{}) error {
	defer resp.Body().Close()

	if resp.Status().IsError() {
		return parseAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := resp.Body().AsJSON(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func parseAPIError(resp *fastshot.Response) error {
	code := resp.Status().Code()
	apiErr := &APIError{
		StatusCode: code,
		Message:    fmt.Sprintf("Request failed with status %d", code),
	}

	raw, err := resp.Body().AsString()
	if err != nil {
		return apiErr
	}

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal([]byte(raw), &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else if text := strings.TrimSpace(raw); text != "" {
		apiErr.Message = text
	}
	return apiErr
}

// Upload posts one file as the multipart field "file" and returns the stored path.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	resp, err := c.http.POST("/api/upload").
		Context().Set(ctx).
		Header().Add("Content-Type", mw.FormDataContentType()).
		Body().AsReader(&buf).
		Send()
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}

	var result struct {
		FilePath string `json:"filePath"`
	}
	if err := decodeResponse(resp, &result); err != nil {
		return "", err
	}
	if result.FilePath == "" {
		return "", errors.New("upload response did not include a file path")
	}
	return result.FilePath, nil
}

// Resource is one CRUD collection of the API, e.g. /api/carousel.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.sendJSON(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T]) Create(ctx context.Context, record T) (T, error) {
	var created T
	err := r.client.sendJSON(ctx, http.MethodPost, r.path, record, &created)
	return created, err
}

func (r *Resource[T]) Update(ctx context.Context, id string, record T) (T, error) {
	var updated T
	err := r.client.sendJSON(ctx, http.MethodPut, r.path+"/"+id, record, &updated)
	return updated, err
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.sendJSON(ctx, http.MethodDelete, r.path+"/"+id, nil, nil)
}

// Singleton is an endpoint holding at most one record: GET answers the record or null, POST
// creates it and PUT replaces it.
type Singleton[T any] struct {
	client *Client
	path   string
}

func NewSingleton[T any](client *Client, path string) *Singleton[T] {
	return &Singleton[T]{client: client, path: path}
}

// Get returns nil when nothing has been saved yet.
func (s *Singleton[T]) Get(ctx context.Context) (*T, error) {
	var record *T
	if err := s.client.sendJSON(ctx, http.MethodGet, s.path, nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Singleton[T]) Create(ctx context.Context, record T) (T, error) {
	var created T
	err := s.client.sendJSON(ctx, http.MethodPost, s.path, record, &created)
	return created, err
}

func (s *Singleton[T]) Update(ctx context.Context, record T) (T, error) {
	var updated T
	err := s.client.sendJSON(ctx, http.MethodPut, s.path, record, &updated)
	return updated, err
}
