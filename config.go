package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"crewledger/pkg/billing"
)

// Config collects every tunable from the environment. Rates that were inline
// constants in earlier iterations (6% tax, $50/h labor) live here so
// deployments can override them.
type Config struct {
	Port        string
	DBDriver    string // postgres | sqlite
	DBDSN       string
	AutoMigrate bool

	JWTSecret []byte
	JWTExpiry time.Duration

	TaxRate         decimal.Decimal
	LaborHourlyRate decimal.Decimal

	GoogleClientID string
	// Lowercased emails permitted to sign in; empty slice means everyone.
	AllowedEmails []string

	AdminEmail    string
	AdminPassword string

	StorageProvider string // gcs | local
	GCSBucket       string
	UploadBase      string
	PublicBaseURL   string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadConfig() Config {
	cfg := Config{
		Port:            envOr("PORT", "8080"),
		DBDriver:        strings.ToLower(envOr("DB_DRIVER", "postgres")),
		DBDSN:           os.Getenv("DB_DSN"),
		AutoMigrate:     true,
		JWTSecret:       []byte(envOr("JWT_SECRET", "dev-insecure-secret-change")),
		JWTExpiry:       168 * time.Hour, // 7 days
		TaxRate:         billing.DefaultTaxRate,
		LaborHourlyRate: billing.DefaultHourlyRate,
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
		AdminEmail:      strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		StorageProvider: strings.ToLower(envOr("STORAGE_PROVIDER", "local")),
		GCSBucket:       os.Getenv("GCS_BUCKET"),
		UploadBase:      envOr("UPLOAD_BASE", "uploads"),
		PublicBaseURL:   envOr("PUBLIC_BASE_URL", "/public"),
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			cfg.AutoMigrate = false
		}
	}
	if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.JWTExpiry = time.Duration(hours) * time.Hour
		}
	}
	if v := os.Getenv("TAX_RATE"); v != "" {
		if rate, err := decimal.NewFromString(v); err == nil && !rate.IsNegative() {
			cfg.TaxRate = rate
		}
	}
	if v := os.Getenv("LABOR_HOURLY_RATE"); v != "" {
		if rate, err := decimal.NewFromString(v); err == nil && !rate.IsNegative() {
			cfg.LaborHourlyRate = rate
		}
	}
	if v := os.Getenv("AUTH_ALLOWED_EMAILS"); v != "" {
		for _, e := range strings.Split(v, ",") {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				cfg.AllowedEmails = append(cfg.AllowedEmails, e)
			}
		}
	}
	return cfg
}

// emailAllowed applies the optional sign-in allow-list.
func (c Config) emailAllowed(email string) bool {
	if len(c.AllowedEmails) == 0 {
		return true
	}
	email = strings.ToLower(email)
	for _, allowed := range c.AllowedEmails {
		if allowed == email {
			return true
		}
	}
	return false
}
