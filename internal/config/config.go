package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabasePath  string
	Environment   string
	LogLevel      string
	SessionSecret []byte
	SessionMaxAge int

	GoogleClientID     string
	GoogleClientSecret string
	RedirectURL        string
	AdminEmails        []string
	AdminAPIToken      string

	Upload UploadConfig

	CarouselInterval time.Duration
}

// UploadConfig selects the image storage backend. Backend is "filesystem", "s3" or "memory";
// the S3 fields are only read when Backend == "s3".
type UploadConfig struct {
	Backend  string
	Dir      string
	MaxBytes int64

	S3Bucket        string
	S3Prefix        string
	S3Region        string
	S3Endpoint      string
	S3PublicBaseURL string
	// Static credentials; when empty the default AWS credential chain is used.
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// ConsoleConfig is what the admin console needs to reach a running server.
type ConsoleConfig struct {
	APIURL   string
	APIToken string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config := &Config{}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}
	if len(sessionSecret) < 32 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}
	config.SessionSecret = []byte(sessionSecret)

	config.Port = getEnvWithDefault("PORT", "8080")
	config.DatabasePath = getEnvWithDefault("DATABASE_PATH", "./lawsite.db")
	config.Environment = getEnvWithDefault("ENVIRONMENT", "development")
	config.LogLevel = getEnvWithDefault("LOG_LEVEL", "INFO")

	maxAge, err := strconv.Atoi(getEnvWithDefault("SESSION_MAX_AGE", "86400"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_MAX_AGE: %w", err)
	}
	config.SessionMaxAge = maxAge

	config.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	config.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	config.RedirectURL = getEnvWithDefault("REDIRECT_URL", "http://localhost:8080/auth/callback")
	config.AdminEmails = splitEmails(os.Getenv("ADMIN_EMAILS"))
	config.AdminAPIToken = os.Getenv("ADMIN_API_TOKEN")

	upload, err := loadUploadConfig()
	if err != nil {
		return nil, err
	}
	config.Upload = upload

	interval, err := time.ParseDuration(getEnvWithDefault("CAROUSEL_INTERVAL", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CAROUSEL_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("CAROUSEL_INTERVAL must be positive")
	}
	config.CarouselInterval = interval

	return config, nil
}

func loadUploadConfig() (UploadConfig, error) {
	cfg := UploadConfig{
		Backend:         getEnvWithDefault("UPLOAD_BACKEND", "filesystem"),
		Dir:             getEnvWithDefault("UPLOAD_DIR", "./uploads"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Prefix:        os.Getenv("S3_PREFIX"),
		S3Region:        getEnvWithDefault("S3_REGION", "us-east-1"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3PublicBaseURL: strings.TrimSuffix(os.Getenv("S3_PUBLIC_BASE_URL"), "/"),

		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
	}

	maxBytes, err := strconv.ParseInt(getEnvWithDefault("UPLOAD_MAX_BYTES", "5242880"), 10, 64)
	if err != nil {
		return cfg, fmt.Errorf("invalid UPLOAD_MAX_BYTES: %w", err)
	}
	cfg.MaxBytes = maxBytes

	switch cfg.Backend {
	case "filesystem", "memory":
	case "s3":
		if cfg.S3Bucket == "" {
			return cfg, fmt.Errorf("S3_BUCKET is required when UPLOAD_BACKEND=s3")
		}
		if cfg.S3PublicBaseURL == "" {
			return cfg, fmt.Errorf("S3_PUBLIC_BASE_URL is required when UPLOAD_BACKEND=s3")
		}
	default:
		return cfg, fmt.Errorf("unknown UPLOAD_BACKEND: %s", cfg.Backend)
	}

	return cfg, nil
}

// LoadDatabasePath reads DATABASE_PATH for commands that only touch the database.
func LoadDatabasePath() string {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return getEnvWithDefault("DATABASE_PATH", "./lawsite.db")
}

// LoadConsoleConfig reads the settings for `lawsite admin`. Flags override these values.
func LoadConsoleConfig() ConsoleConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return ConsoleConfig{
		APIURL:   getEnvWithDefault("LAWSITE_API_URL", "http://localhost:8080"),
		APIToken: os.Getenv("ADMIN_API_TOKEN"),
	}
}

// OAuthEnabled reports whether Google login can be offered.
func (c *Config) OAuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitEmails(raw string) []string {
	var emails []string
	for _, part := range strings.Split(raw, ",") {
		email := strings.ToLower(strings.TrimSpace(part))
		if email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}

func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func GenerateCSRFToken() (string, error) {
	return GenerateSecureToken(32)
}
