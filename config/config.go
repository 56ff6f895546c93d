package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Config holds every setting read from the environment
type Config struct {
	Env                 string
	Port                string
	PublicBaseURL       string
	DatabaseURL         string
	SessionSecret       []byte
	CORSOrigins         []string
	DriveCredentials    string
	DriveFolderID       string
	AssistantAPIKey     string
	AssistantModel      string
	AssistantEndpoint   string
	ReportLocation      *time.Location
	ChromePath          string
	BookingSessionTTL   time.Duration
	CatalogPollInterval time.Duration
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env:               getenv("ENV", "development"),
		Port:              strings.TrimPrefix(getenv("PORT", "8080"), ":"),
		PublicBaseURL:     strings.TrimSuffix(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		DatabaseURL:       databaseURL(),
		SessionSecret:     []byte(os.Getenv("SESSION_SECRET")),
		CORSOrigins:       splitList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		DriveCredentials:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		DriveFolderID:     os.Getenv("DRIVE_FOLDER_ID"),
		AssistantAPIKey:   os.Getenv("ASSISTANT_API_KEY"),
		AssistantModel:    getenv("ASSISTANT_MODEL", "gemini-1.5-flash"),
		AssistantEndpoint: getenv("ASSISTANT_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta"),
		ChromePath:        os.Getenv("CHROME_PATH"),
	}

	if len(cfg.SessionSecret) == 0 {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is not set")
	}

	tz := getenv("REPORT_TIMEZONE", "America/La_Paz")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("⚠️ Config: unknown REPORT_TIMEZONE %q, using UTC: %v", tz, err)
		loc = time.UTC
	}
	cfg.ReportLocation = loc

	if cfg.BookingSessionTTL, err = durationEnv("BOOKING_SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CatalogPollInterval, err = durationEnv("CATALOG_POLL_INTERVAL", 15*time.Second); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Production reports whether ENV=production
func (c *Config) Production() bool {
	return c.Env == "production"
}

func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	// Build connection string from individual variables
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, getenv("DB_PORT", "5432"), user, os.Getenv("DB_PASSWORD"), dbname, getenv("DB_SSLMODE", "disable"))
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: use a Go duration like 30m", key, raw)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
