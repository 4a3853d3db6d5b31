package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv               string
	Port                 string
	DatabaseURL          string
	DBMaxConns           int32
	AdminJWTSecret       string
	StoragePath          string
	StorageBaseURL       string
	WorkspacePath        string
	GeoIPDBPath          string
	UploadMaxSizeMB      int64
	UploadMinWidth       int
	UploadMinHeight      int
	PreviewMaxWidth      int
	TrackingBaseURL      string
	PaymentProvider      string
	PaymentBaseURL       string
	PaymentAPIKey        string
	PaymentWebhookSecret string
	NotifyWebhookURL     string
	NotifyAuthToken      string
	CORSAllowedOrigins   []string
	HTTPReadTimeout      time.Duration
	HTTPWriteTimeout     time.Duration
	HTTPIdleTimeout      time.Duration
	RateLimitPerMin      int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:               getEnv("APP_ENV", "development"),
		Port:                 getEnv("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		DBMaxConns:           int32(getEnvInt("DB_MAX_CONNS", 10)),
		AdminJWTSecret:       os.Getenv("ADMIN_JWT_SECRET"),
		StoragePath:          getEnv("STORAGE_PATH", "./storage"),
		StorageBaseURL:       getEnv("STORAGE_BASE_URL", "http://localhost:8080/static"),
		WorkspacePath:        os.Getenv("WORKSPACE_PATH"),
		GeoIPDBPath:          os.Getenv("GEOIP_DB_PATH"),
		UploadMaxSizeMB:      int64(getEnvInt("UPLOAD_MAX_SIZE_MB", 20)),
		UploadMinWidth:       getEnvInt("UPLOAD_MIN_WIDTH", 0),
		UploadMinHeight:      getEnvInt("UPLOAD_MIN_HEIGHT", 0),
		PreviewMaxWidth:      getEnvInt("PREVIEW_MAX_WIDTH", 480),
		TrackingBaseURL:      getEnv("TRACKING_BASE_URL", "http://localhost:8080/track"),
		PaymentProvider:      getEnv("PAYMENT_PROVIDER", "sandbox"),
		PaymentBaseURL:       getEnv("PAYMENT_BASE_URL", "https://api.sandbox.example.com/v2"),
		PaymentAPIKey:        os.Getenv("PAYMENT_API_KEY"),
		PaymentWebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
		NotifyWebhookURL:     os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifyAuthToken:      os.Getenv("NOTIFY_AUTH_TOKEN"),
		CORSAllowedOrigins:   splitEnvList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		HTTPReadTimeout:      time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:     time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:      time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:      getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.AdminJWTSecret == "" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitEnvList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
