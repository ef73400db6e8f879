package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode string
	Port    string
	BaseURL string
	Mongo   MongoConfig
	JWT     JWTConfig
	SMTP    SMTPConfig
	Email   EmailConfig
	Digest  DigestConfig
	Root    RootConfig
}

// MongoConfig holds record store configuration
type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret           string
	Issuer           string
	SessionTokenMins int
	ActionTokenMins  int
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailConfig holds registration email policy
type EmailConfig struct {
	AllowedDomains []string
}

// DigestConfig holds the pending-review digest schedule
type DigestConfig struct {
	CronSpec string
	Enabled  bool
}

// RootConfig holds the bootstrap root account, seeded on first start
type RootConfig struct {
	Email    string
	Username string
	Password string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	sessionMins, _ := strconv.Atoi(getEnv("SESSION_TOKEN_MINUTES", "30"))
	actionMins, _ := strconv.Atoi(getEnv("ACTION_TOKEN_MINUTES", "60"))
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	digestEnabled, _ := strconv.ParseBool(getEnv("DIGEST_ENABLED", "true"))

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "8000"),
		BaseURL: getEnv("APP_BASE_URL", "http://localhost:5173"),
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "resources_db"),
		},
		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "default_secret"),
			Issuer:           getEnv("JWT_ISSUER", "yorkhub"),
			SessionTokenMins: sessionMins,
			ActionTokenMins:  actionMins,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     smtpPort,
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", "no-reply@yorkhub.ca"),
		},
		Email: EmailConfig{
			AllowedDomains: splitList(getEnv("ALLOWED_EMAIL_DOMAINS", "@yorku.ca,@my.yorku.ca")),
		},
		Digest: DigestConfig{
			CronSpec: getEnv("DIGEST_CRON", "30 8 * * *"),
			Enabled:  digestEnabled,
		},
		Root: RootConfig{
			Email:    getEnv("ROOT_EMAIL", ""),
			Username: getEnv("ROOT_USERNAME", ""),
			Password: getEnv("ROOT_PASSWORD", ""),
		},
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := []string{}
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return c.BaseURL
	}
	return origins
}
