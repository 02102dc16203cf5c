package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	SMTP       SMTPConfig
	Payment    PaymentConfig
	Studio     StudioConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	Vision     VisionConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	BaseURL      string // public base URL used in emailed payment links
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

type PaymentConfig struct {
	WebhookSecret      string
	LinkExpirationDays int
	SweepInterval      time.Duration
}

// StudioConfig holds the studio's physical location for geofenced clock-in.
type StudioConfig struct {
	Name           string
	Latitude       float64
	Longitude      float64
	GeofenceMeters float64
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// VisionConfig configures the skin analysis provider (OpenAI-compatible API).
type VisionConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, relying on system env vars")
	}
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Env:          getEnv("APP_ENV", "development"),
			BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DATABASE_DSN", "pmupro:pmupro@tcp(localhost:3306)/pmupro?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "pmupro",
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "465"),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", "no-reply@pmupro.app"),
			FromName: getEnv("SMTP_FROM_NAME", "PMU Pro"),
		},
		Payment: PaymentConfig{
			WebhookSecret:      getEnv("PAYMENT_WEBHOOK_SECRET", ""),
			LinkExpirationDays: getEnvInt("DEPOSIT_LINK_EXPIRATION_DAYS", 7),
			SweepInterval:      time.Duration(getEnvInt("DEPOSIT_SWEEP_INTERVAL_MIN", 15)) * time.Minute,
		},
		Studio: StudioConfig{
			Name:           getEnv("STUDIO_NAME", "PMU Pro Studio"),
			Latitude:       getEnvFloat("STUDIO_LAT", 0),
			Longitude:      getEnvFloat("STUDIO_LNG", 0),
			GeofenceMeters: getEnvFloat("STUDIO_GEOFENCE_METERS", 150),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		Vision: VisionConfig{
			BaseURL: getEnv("VISION_BASE_URL", "https://api.openai.com/v1"),
			APIKey:  getEnv("VISION_API_KEY", ""),
			Model:   getEnv("VISION_MODEL", "gpt-4o-mini"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
