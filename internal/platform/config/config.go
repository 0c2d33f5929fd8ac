package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/smart_wallet/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StorageBolt     = "bolt"
	StoragePostgres = "postgres"
)

const (
	defaultJWTExpiry   = 12 * time.Hour
	defaultJWTIssuer   = "smart-wallet"
	defaultUnlockLimit = "5-M"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	StorageDriver string
	BoltPath      string
	DatabaseURL   string
	RunMigrations bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	UnlockRateLimit   string // ulule/limiter formatted rate, e.g. "5-M"

	CORSAllowedOrigins []string

	// Sheets export is enabled only when both are set.
	GoogleSpreadsheetID       string
	GoogleServiceAccountFile string
}

// SheetsEnabled reports whether statements can be exported to Google Sheets.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleSpreadsheetID != "" && c.GoogleServiceAccountFile != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", StorageBolt)
	viper.SetDefault("BOLT_PATH", "smart_wallet.db")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("UNLOCK_RATE_LIMIT", defaultUnlockLimit)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("GOOGLE_SPREADSHEET_ID", "")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	switch cfg.StorageDriver {
	case StorageBolt, StoragePostgres:
	default:
		log.Printf("Warning: Unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageBolt)
		cfg.StorageDriver = StorageBolt
	}
	cfg.BoltPath = viper.GetString("BOLT_PATH")
	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: STORAGE_DRIVER is postgres but PGSQL_URL environment variable not set.")
	}
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		// Sessions live in memory, so a per-process key only costs a re-unlock after restart.
		secret, err := utils.GenerateSecureRandomString(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		cfg.JWTSecret = secret
		log.Println("Warning: JWT_SECRET environment variable not set. Using a random key for this process.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = defaultJWTExpiry
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.UnlockRateLimit = viper.GetString("UNLOCK_RATE_LIMIT")
	if cfg.UnlockRateLimit == "" {
		cfg.UnlockRateLimit = defaultUnlockLimit
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.GoogleSpreadsheetID = viper.GetString("GOOGLE_SPREADSHEET_ID")
	cfg.GoogleServiceAccountFile = viper.GetString("GOOGLE_SERVICE_ACCOUNT_FILE")
	if cfg.GoogleSpreadsheetID != "" && cfg.GoogleServiceAccountFile == "" {
		log.Println("Warning: GOOGLE_SPREADSHEET_ID set without GOOGLE_SERVICE_ACCOUNT_FILE. Sheets export will not function.")
	}

	return cfg, nil
}
