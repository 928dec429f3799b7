package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./lawsite.db", cfg.DatabasePath)
	assert.Equal(t, 86400, cfg.SessionMaxAge)
	assert.Equal(t, "filesystem", cfg.Upload.Backend)
	assert.Equal(t, int64(5242880), cfg.Upload.MaxBytes)
	assert.Equal(t, 5*time.Second, cfg.CarouselInterval)
	assert.False(t, cfg.OAuthEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_SessionSecret(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("too short", func(t *testing.T) {
		t.Setenv("SESSION_SECRET", "short")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32")
	})
}

func TestLoadConfig_AdminEmails(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("ADMIN_EMAILS", " Partner@Firm.com, ,clerk@firm.com ")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"partner@firm.com", "clerk@firm.com"}, cfg.AdminEmails)
}

func TestLoadConfig_Upload(t *testing.T) {
	testCases := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "s3 without bucket", env: map[string]string{"UPLOAD_BACKEND": "s3"}, wantErr: "S3_BUCKET"},
		{name: "s3 without public url", env: map[string]string{"UPLOAD_BACKEND": "s3", "S3_BUCKET": "b"}, wantErr: "S3_PUBLIC_BASE_URL"},
		{name: "unknown backend", env: map[string]string{"UPLOAD_BACKEND": "ftp"}, wantErr: "unknown UPLOAD_BACKEND"},
		{name: "bad max bytes", env: map[string]string{"UPLOAD_MAX_BYTES": "lots"}, wantErr: "UPLOAD_MAX_BYTES"},
		{name: "s3 complete", env: map[string]string{"UPLOAD_BACKEND": "s3", "S3_BUCKET": "b", "S3_PUBLIC_BASE_URL": "https://cdn.example.com"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", testSecret)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tc.wantErr), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "s3", cfg.Upload.Backend)
		})
	}
}

func TestLoadConfig_CarouselInterval(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("CAROUSEL_INTERVAL", "0s")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestGenerateCSRFToken(t *testing.T) {
	a, err := GenerateCSRFToken()
	require.NoError(t, err)
	b, err := GenerateCSRFToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestLoadDatabasePath(t *testing.T) {
	t.Setenv("DATABASE_PATH", "")
	assert.Equal(t, "./lawsite.db", LoadDatabasePath())

	t.Setenv("DATABASE_PATH", "/var/lib/lawsite/site.db")
	assert.Equal(t, "/var/lib/lawsite/site.db", LoadDatabasePath())
}

func TestLoadConsoleConfig(t *testing.T) {
	t.Setenv("LAWSITE_API_URL", "")
	t.Setenv("ADMIN_API_TOKEN", "tok")

	cfg := LoadConsoleConfig()
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, "tok", cfg.APIToken)
}
