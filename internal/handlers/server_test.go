package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lawFirmWebsite/internal/config"
	"lawFirmWebsite/internal/logging"
	"lawFirmWebsite/internal/models"
	"lawFirmWebsite/internal/testutil"
	"lawFirmWebsite/internal/uploads"
)

const testAPIToken = "test-admin-token"

type testServer struct {
	*Server
	handler http.Handler
	files   *uploads.MemoryStore
}

func newTestConfig() *config.Config {
	return &config.Config{
		Environment:      "test",
		LogLevel:         "error",
		SessionSecret:    []byte("0123456789abcdef0123456789abcdef"),
		SessionMaxAge:    3600,
		AdminEmails:      []string{"partner@firm.com"},
		AdminAPIToken:    testAPIToken,
		CarouselInterval: 5 * time.Second,
		Upload: config.UploadConfig{
			Backend:  "memory",
			MaxBytes: 1024,
		},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithConfig(t, newTestConfig())
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()

	files := uploads.NewMemoryStore()
	s := NewServer(cfg, logging.Discard(), testutil.NewTestStore(t), files)
	return &testServer{Server: s, handler: s.Router(), files: files}
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func withAdminToken() requestOption { return withToken(testAPIToken) }

func withCookie(c *http.Cookie) requestOption {
	return func(r *http.Request) { r.AddCookie(c) }
}

func withHeader(key, value string) requestOption {
	return func(r *http.Request) { r.Header.Set(key, value) }
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// sessionCookie signs an admin session the way the OAuth callback would.
func (ts *testServer) sessionCookie(t *testing.T, email, csrf string, createdAt time.Time) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	session, err := ts.SessionStore.New(req, sessionName)
	require.NoError(t, err)

	raw, err := json.Marshal(models.SessionData{
		UserEmail:     email,
		Authenticated: true,
		CSRFToken:     csrf,
		CreatedAt:     createdAt,
	})
	require.NoError(t, err)
	session.Values["session_data"] = string(raw)
	require.NoError(t, session.Save(req, rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}
