package initializers

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Mawaqit/models"
)

const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"

	AuthFirebase = "firebase"
	AuthHMAC     = "hmac"
)

type Config struct {
	Port string

	StoreBackend string
	DBURL        string

	FirebaseServiceAccountPath string
	FirebaseProjectID          string
	FirebaseStorageBucket      string

	AuthMode string
	Secret   string

	ResendAPIKey    string
	ResendFromEmail string

	GeminiAPIKey string
	GeminiModel  string

	Location            *time.Location
	StatsBatchSize      int
	StatsMaxConcurrency int
	StrictTransitions   bool

	LogLevel log.Level
}

// LoadConfig builds a Config from the environment, applying defaults for
// anything unset.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                       getEnv("PORT", "8080"),
		StoreBackend:               getEnv("STORE_BACKEND", StoreFirestore),
		DBURL:                      os.Getenv("DB_URL"),
		FirebaseServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		FirebaseProjectID:          os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseStorageBucket:      os.Getenv("FIREBASE_STORAGE_BUCKET"),
		AuthMode:                   getEnv("AUTH_MODE", AuthFirebase),
		Secret:                     os.Getenv("SECRET"),
		ResendAPIKey:               os.Getenv("RESEND_API_KEY"),
		ResendFromEmail:            getEnv("RESEND_FROM_EMAIL", "noreply@mawaqit.app"),
		GeminiAPIKey:               os.Getenv("GEMINI_API_KEY"),
		GeminiModel:                os.Getenv("GEMINI_MODEL"),
	}

	switch cfg.StoreBackend {
	case StoreFirestore, StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == StorePostgres && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORE_BACKEND=%s", StorePostgres)
	}

	switch cfg.AuthMode {
	case AuthFirebase:
	case AuthHMAC:
		if cfg.Secret == "" {
			return Config{}, fmt.Errorf("SECRET is required when AUTH_MODE=%s", AuthHMAC)
		}
	default:
		return Config{}, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}

	location, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = location

	if cfg.StatsBatchSize, err = getEnvInt("STATS_BATCH_SIZE", 0); err != nil {
		return Config{}, err
	}
	if cfg.StatsMaxConcurrency, err = getEnvInt("STATS_MAX_CONCURRENCY", 0); err != nil {
		return Config{}, err
	}

	if raw := os.Getenv("STRICT_TRANSITIONS"); raw != "" {
		if cfg.StrictTransitions, err = strconv.ParseBool(raw); err != nil {
			return Config{}, fmt.Errorf("invalid STRICT_TRANSITIONS: %w", err)
		}
	}

	cfg.LogLevel = log.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if cfg.LogLevel, err = log.ParseLevel(raw); err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

// NeedsFirebase reports whether any configured component talks to Firebase.
func (c Config) NeedsFirebase() bool {
	return c.StoreBackend == StoreFirestore || c.AuthMode == AuthFirebase
}

// Today returns the current date key in the configured time zone.
func (c Config) Today() string {
	return models.DateKey(time.Now().In(c.Location))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}
