package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	JWTSecret string

	// ReportingTimezone anchors calendar windows (monthly impact,
	// leaderboard periods). Defaults to the organization's local zone.
	ReportingTimezone string

	RateLimitSubmission  time.Duration
	LeaderboardCacheTTL  time.Duration
	TotalsReconcileEvery time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "rtc_volunteers"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		ReportingTimezone: getEnv("REPORTING_TIMEZONE", "Africa/Cairo"),
	}

	// Parsing durations
	var err error
	cfg.RateLimitSubmission, err = parseDuration(getEnv("RATE_LIMIT_SUBMISSION", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SUBMISSION: %w", err)
	}
	cfg.LeaderboardCacheTTL, err = parseDuration(getEnv("LEADERBOARD_CACHE_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_CACHE_TTL: %w", err)
	}
	cfg.TotalsReconcileEvery, err = parseDuration(getEnv("TOTALS_RECONCILE_EVERY", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOTALS_RECONCILE_EVERY: %w", err)
	}

	return cfg, nil
}

// ReportingLocation loads the configured timezone, falling back to UTC if it
// is unknown.
func (c *Config) ReportingLocation() *time.Location {
	loc, err := time.LoadLocation(c.ReportingTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
