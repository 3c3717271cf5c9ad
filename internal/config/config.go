package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	Port     string
	MongoURI string
	RedisURI string

	JWTSecret string
	BaseURL   string // public base URL used in survey links

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	LogLevel    string
	Environment string

	CronSpecCheckin string // hourly check-in dispatch
	CronSpecPulse   string // weekly pulse calculation
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables; a missing
	// .env file is not an error.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.MongoURI = os.Getenv("MONGO_URI")
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}

	cfg.RedisURI = strings.TrimPrefix(os.Getenv("REDIS_URI"), "redis://")
	if cfg.RedisURI == "" {
		cfg.RedisURI = "localhost:6379"
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = os.Getenv("SMTP_PORT")
	if cfg.SMTPPort == "" {
		cfg.SMTPPort = "587"
	}
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.CronSpecCheckin = os.Getenv("CRON_SPEC_CHECKIN")
	if cfg.CronSpecCheckin == "" {
		cfg.CronSpecCheckin = "0 * * * *" // top of every hour
	}

	cfg.CronSpecPulse = os.Getenv("CRON_SPEC_PULSE")
	if cfg.CronSpecPulse == "" {
		cfg.CronSpecPulse = "0 0 * * 0" // Sunday midnight
	}

	return cfg, nil
}
