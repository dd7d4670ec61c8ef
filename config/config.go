package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the promo service
type Config struct {
	Env      string
	Server   ServerConfig
	Webhook  WebhookConfig
	Capture  CaptureConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	Drive    DriveConfig
	Admin    AdminConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	// BaseURL is how headless Chrome reaches this process to render the poster
	BaseURL            string
	CORSAllowedOrigins []string
}

// WebhookConfig holds the messaging webhook destination
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// CaptureConfig holds poster rasterization settings
type CaptureConfig struct {
	ChromePath   string
	Timeout      time.Duration
	PixelRatio   float64
	MaxDimension int
}

// CatalogConfig points at an optional catalog file replacing the embedded one
type CatalogConfig struct {
	Path string
}

// DatabaseConfig holds the optional lead log connection string
type DatabaseConfig struct {
	URL string
}

// DriveConfig holds the optional Google Drive archive settings
type DriveConfig struct {
	CredentialsPath string
	FolderID        string
}

// AdminConfig holds the basic-auth credentials guarding the admin listings.
// Admin routes are not mounted unless both are set.
type AdminConfig struct {
	User     string
	Password string
}

// Enabled reports whether admin credentials are configured
func (a AdminConfig) Enabled() bool {
	return a.User != "" && a.Password != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	port := strings.TrimPrefix(getEnv("PORT", "8080"), ":")

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		Server: ServerConfig{
			Port:               port,
			BaseURL:            strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+port), "/"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Webhook: WebhookConfig{
			URL:     strings.TrimSpace(getEnv("DISCORD_WEBHOOK_URL", "")),
			Timeout: getEnvAsDuration("WEBHOOK_TIMEOUT", 15*time.Second),
		},
		Capture: CaptureConfig{
			ChromePath:   getEnv("CHROME_PATH", ""),
			Timeout:      getEnvAsDuration("CAPTURE_TIMEOUT", 30*time.Second),
			PixelRatio:   getEnvAsFloat("CAPTURE_PIXEL_RATIO", 2.5),
			MaxDimension: getEnvAsInt("POSTER_MAX_DIMENSION", 4096),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Drive: DriveConfig{
			CredentialsPath: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			FolderID:        getEnv("DRIVE_FOLDER_ID", ""),
		},
		Admin: AdminConfig{
			User:     strings.TrimSpace(getEnv("ADMIN_USER", "")),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	p, err := strconv.Atoi(c.Server.Port)
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Server.Port)
	}

	if _, err := url.ParseRequestURI(c.Server.BaseURL); err != nil {
		return fmt.Errorf("invalid BASE_URL %q: %w", c.Server.BaseURL, err)
	}

	if c.Webhook.URL != "" {
		if _, err := url.ParseRequestURI(c.Webhook.URL); err != nil {
			return fmt.Errorf("invalid DISCORD_WEBHOOK_URL: %w", err)
		}
	}

	if c.Capture.PixelRatio <= 0 {
		return fmt.Errorf("capture pixel ratio must be positive, got %v", c.Capture.PixelRatio)
	}

	if c.Drive.FolderID != "" && c.Drive.CredentialsPath == "" {
		return fmt.Errorf("DRIVE_FOLDER_ID requires GOOGLE_APPLICATION_CREDENTIALS")
	}

	if (c.Admin.User == "") != (c.Admin.Password == "") {
		return fmt.Errorf("ADMIN_USER and ADMIN_PASSWORD must be set together")
	}

	return nil
}

// IsProduction reports whether ENV is "production"
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
