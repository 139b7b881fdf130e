package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset. Validate refuses it
// against MySQL.
const DevJWTSecret = "precinct-dev-secret"

type Config struct {
	AppPort     string
	CORSOrigins []string
	JWTSecret   string
	JWTTTLHours int

	DBDriver   string // mysql or sqlite
	DBDSN      string
	DBLogLevel string

	UploadDir   string
	MaxUploadMB int
	S3Bucket    string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	SlackToken   string
	SlackChannel string

	CronEnabled bool
	Timezone    string
}

// Load reads .env (when present) and builds the runtime configuration.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found, using system environment variables")
	}

	return &Config{
		AppPort:     GetEnv("APP_PORT", "3000"),
		CORSOrigins: GetEnvAsList("CORS_ORIGINS"),
		JWTSecret:   GetEnv("JWT_SECRET", DevJWTSecret),
		JWTTTLHours: GetEnvAsInt("JWT_TTL_HOURS", 24),

		DBDriver:   GetEnv("DB_DRIVER", "sqlite"),
		DBDSN:      GetEnv("DB_DSN", "precinct.db"),
		DBLogLevel: GetEnv("DB_LOG_LEVEL", "warn"),

		UploadDir:   GetEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadMB: GetEnvAsInt("MAX_UPLOAD_MB", 10),
		S3Bucket:    GetEnv("S3_BUCKET", ""),

		SMTPHost:     GetEnv("SMTP_HOST", ""),
		SMTPPort:     GetEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     GetEnv("SMTP_USER", ""),
		SMTPPassword: GetEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     GetEnv("SMTP_FROM", "roster@precinct.local"),

		SlackToken:   GetEnv("SLACK_BOT_TOKEN", ""),
		SlackChannel: GetEnv("SLACK_SUPERVISOR_CHANNEL", ""),

		CronEnabled: GetEnvAsBool("CRON_ENABLED", true),
		Timezone:    GetEnv("APP_TIMEZONE", "Local"),
	}
}

// Validate rejects settings that must not reach a production database.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.JWTSecret == DevJWTSecret {
		if c.DBDriver == "mysql" {
			return errors.New("JWT_SECRET is not set; refusing to sign tokens with the development secret")
		}
		log.Println("Warning: JWT_SECRET is not set, using the development secret")
	}
	return nil
}

// Location resolves Timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("config: unknown timezone %q, using Local", c.Timezone)
		return time.Local
	}
	return loc
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsList splits a comma separated variable, dropping empty items.
func GetEnvAsList(key string) []string {
	raw := GetEnv(key, "")
	if raw == "" {
		return []string{}
	}

	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
