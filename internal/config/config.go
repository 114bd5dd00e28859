package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	Environment  string
	LogLevel     string
	Backend      BackendConfig
	EmailJS      EmailJSConfig
	Storage      StorageConfig
	Session      SessionConfig
	Database     DatabaseConfig
	OTelEndpoint string // OTEL_ENDPOINT: OTLP/HTTP collector URL; empty disables tracing
}

// BackendConfig is used to call the booking backend. Timeouts are per call site; zero means no timeout.
type BackendConfig struct {
	BaseURL         string // e.g. https://future-bali-backend-1.onrender.com/api
	AuthTimeout     time.Duration
	VerifyTimeout   time.Duration
	FormTimeout     time.Duration
	ContractTimeout time.Duration
}

// EmailJSConfig holds the email-delivery templates for OTP relay and payment confirmation
type EmailJSConfig struct {
	BaseURL  string
	OTP      EmailTemplate
	Confirm  EmailTemplate
	FromName string
}

type EmailTemplate struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// StorageConfig locates the local key-value store (token + package selection fallback)
type StorageConfig struct {
	Path string // empty means in-memory
}

type SessionConfig struct {
	RevalidateInterval time.Duration
}

type DatabaseConfig struct {
	Host     string // empty means drafts are checkpointed in memory
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether a postgres checkpoint store is configured
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

func Load() (*Config, error) {
	// .env is optional; process env wins over it
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Backend: BackendConfig{
			BaseURL: strings.TrimSuffix(strings.TrimSpace(getEnvOrViper("BACKEND_API_URL", "https://future-bali-backend-1.onrender.com/api")), "/"),
		},
		EmailJS: EmailJSConfig{
			BaseURL: strings.TrimSpace(getEnvOrViper("EMAILJS_API_URL", "https://api.emailjs.com")),
			OTP: EmailTemplate{
				ServiceID:  getEnvOrViper("EMAILJS_OTP_SERVICE_ID", "service_clikdn4"),
				TemplateID: getEnvOrViper("EMAILJS_OTP_TEMPLATE_ID", "template_gvxyd5q"),
				PublicKey:  strings.TrimSpace(getEnvOrViper("EMAILJS_OTP_PUBLIC_KEY", "")),
			},
			Confirm: EmailTemplate{
				ServiceID:  getEnvOrViper("EMAILJS_CONFIRM_SERVICE_ID", "service_1xbcnks"),
				TemplateID: getEnvOrViper("EMAILJS_CONFIRM_TEMPLATE_ID", "template_en3ml57"),
				PublicKey:  strings.TrimSpace(getEnvOrViper("EMAILJS_CONFIRM_PUBLIC_KEY", "")),
			},
			FromName: getEnvOrViper("EMAILJS_FROM_NAME", "My Future Life Bali"),
		},
		Storage: StorageConfig{
			Path: strings.TrimSpace(getEnvOrViper("STORAGE_PATH", "./data/local")),
		},
		Database: DatabaseConfig{
			Host:     strings.TrimSpace(getEnvOrViper("DB_HOST", "")),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "futurebali"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		OTelEndpoint: strings.TrimSpace(getEnvOrViper("OTEL_ENDPOINT", "")),
	}

	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("BACKEND_API_URL must be an absolute URL, got %q", cfg.Backend.BaseURL)
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"AUTH_TIMEOUT", "5s", &cfg.Backend.AuthTimeout},
		{"VERIFY_TIMEOUT", "10s", &cfg.Backend.VerifyTimeout},
		{"FORM_TIMEOUT", "15s", &cfg.Backend.FormTimeout},
		{"CONTRACT_TIMEOUT", "30s", &cfg.Backend.ContractTimeout},
		{"SESSION_REVALIDATE_INTERVAL", "3s", &cfg.Session.RevalidateInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnvOrViper(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = v
	}
	if cfg.Session.RevalidateInterval <= 0 {
		return nil, fmt.Errorf("SESSION_REVALIDATE_INTERVAL must be positive")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
