package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Auth       AuthConfig
	CORS       CORSConfig
	Compliance ComplianceConfig
	Sheets     SheetsConfig
	RateSync   RateSyncConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// ComplianceConfig drives the scheduled legal-ceiling and monthly-cap sweep.
type ComplianceConfig struct {
	Enabled      bool
	CronSchedule string
}

// SheetsConfig contains configuration required to export voyage summaries to
// Google Sheets. Both fields empty disables the integration.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// RateSyncConfig points at an optional JSON document of official exchange
// rates used to refresh the configuration defaults. Empty URL disables it.
type RateSyncConfig struct {
	URL          string
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	tokenTTL, err := time.ParseDuration(getenvWithDefault("JWT_TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "microimport"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getenvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		Compliance: ComplianceConfig{
			Enabled:      getenvWithDefault("COMPLIANCE_SWEEP_ENABLED", "true") == "true",
			CronSchedule: getenvWithDefault("COMPLIANCE_CRON_SCHEDULE", "0 6 * * *"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		RateSync: RateSyncConfig{
			URL:          os.Getenv("RATE_SYNC_URL"),
			CronSchedule: getenvWithDefault("RATE_SYNC_CRON_SCHEDULE", "0 7 * * 1"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TOKEN_TTL must be positive")
	}

	if c.Compliance.Enabled && c.Compliance.CronSchedule == "" {
		return errors.New("COMPLIANCE_CRON_SCHEDULE must be provided when the sweep is enabled")
	}

	// Sheets export is optional, but half a configuration is a mistake.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_EXPORT_ID must be set together")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
