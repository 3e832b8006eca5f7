package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// BaaSConfig holds the endpoints of the no-code backend.
type BaaSConfig struct {
	StoreURL         string
	AuthURL          string
	FileBaseURL      string
	TimeoutSec       int
	UploadTimeoutSec int
	MaxRetries       int
	UploadField      string
}

// Timeout returns the per-request timeout for JSON calls.
func (b BaaSConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSec) * time.Second
}

// UploadTimeout returns the per-request timeout for multipart uploads.
func (b BaaSConfig) UploadTimeout() time.Duration {
	return time.Duration(b.UploadTimeoutSec) * time.Second
}

// RedisConfig holds Redis connection settings. An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	DefaultTTLSec int
}

// SessionConfig holds session token settings.
type SessionConfig struct {
	JWTSecret string
	TTLHours  int
}

// TTL returns the session lifetime.
func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// CheckoutConfig holds pricing settings applied to the draft cart.
type CheckoutConfig struct {
	TaxRate  float64
	Currency string
}

// SMTPConfig holds outbound mail settings. An empty Host disables notifications.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	NotifyTo string
}

// ImageConfig selects where uploaded images are stored.
type ImageConfig struct {
	Store    string
	MaxBytes int64
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// AdminConfig holds the bootstrap admin account.
type AdminConfig struct {
	Email    string
	Password string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost          string
	Port             string
	LogLevel         string
	Timezone         string
	CORSAllowOrigins string
	BaaS             BaaSConfig
	Redis            RedisConfig
	Cache            CacheConfig
	Session          SessionConfig
	Checkout         CheckoutConfig
	SMTP             SMTPConfig
	Images           ImageConfig
	MinIO            MinIOConfig
	Admin            AdminConfig
}

// Location resolves Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		AppHost:          getEnv("APP_HOST", "localhost:8080"),
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Timezone:         getEnv("TIMEZONE", "UTC"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		BaaS: BaaSConfig{
			StoreURL:         strings.TrimRight(getEnv("BAAS_STORE_URL", "https://x8ki-letl-twmt.n7.xano.io/api:OdHOEeXs"), "/"),
			AuthURL:          strings.TrimRight(getEnv("BAAS_AUTH_URL", "https://x8ki-letl-twmt.n7.xano.io/api:KBcldO_7"), "/"),
			FileBaseURL:      strings.TrimRight(getEnv("BAAS_FILE_BASE_URL", "https://x8ki-letl-twmt.n7.xano.io"), "/"),
			TimeoutSec:       getEnvInt("BAAS_TIMEOUT_SEC", 15),
			UploadTimeoutSec: getEnvInt("BAAS_UPLOAD_TIMEOUT_SEC", 60),
			MaxRetries:       getEnvInt("BAAS_MAX_RETRIES", 3),
			UploadField:      getEnv("BAAS_UPLOAD_FIELD", "content[]"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			DefaultTTLSec: getEnvInt("CACHE_DEFAULT_TTL_SEC", 120),
		},
		Session: SessionConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TTLHours:  getEnvInt("SESSION_TTL_HOURS", 24),
		},
		Checkout: CheckoutConfig{
			TaxRate:  getEnvFloat("TAX_RATE", 0.19),
			Currency: getEnv("CURRENCY", "CLP"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			NotifyTo: getEnv("CONTACT_NOTIFY_TO", ""),
		},
		Images: ImageConfig{
			Store:    getEnv("IMAGE_STORE", "baas"),
			MaxBytes: int64(getEnvInt("IMAGE_MAX_BYTES", 10*1024*1024)),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@ambientefest.cl"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
