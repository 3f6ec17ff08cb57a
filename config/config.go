package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is built once in main and
// passed down; nothing in the application reads the environment after Load.
type Config struct {
	Port    string
	GinMode string

	DatabaseURL string

	// SecretKey signs the session cookies carrying flash messages.
	SecretKey string

	LineAccessToken   string
	LineChannelSecret string

	// PriceProvider selects the market-data backend: "yahoo" or "polygon".
	PriceProvider string
	PolygonAPIKey string

	LogLevel string

	DBMaxIdleConns    int
	DBMaxOpenConns    int
	DBConnMaxLifetime int // minutes
	DBConnMaxIdleTime int // minutes
}

// Load reads .env (if present) and the environment into a Config.
// Missing required values are a startup error, never a runtime one.
func Load() (*Config, error) {
	// k8s/prod may inject env vars directly, so a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "release"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SecretKey:         getEnv("APP_SECRET_KEY", ""),
		LineAccessToken:   getEnv("LINE_ACCESS_TOKEN", ""),
		LineChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),
		PriceProvider:     getEnv("PRICE_PROVIDER", "yahoo"),
		PolygonAPIKey:     getEnv("POLYGON_API_KEY", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),

		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBConnMaxLifetime: getEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		DBConnMaxIdleTime: getEnvAsInt("DB_CONN_MAX_IDLE_TIME_MINUTES", 10),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SecretKey == "" {
		return fmt.Errorf("APP_SECRET_KEY is required")
	}
	if cfg.LineAccessToken == "" {
		return fmt.Errorf("LINE_ACCESS_TOKEN is required")
	}
	if cfg.LineChannelSecret == "" {
		return fmt.Errorf("LINE_CHANNEL_SECRET is required")
	}
	switch cfg.PriceProvider {
	case "yahoo":
	case "polygon":
		if cfg.PolygonAPIKey == "" {
			return fmt.Errorf("POLYGON_API_KEY is required when PRICE_PROVIDER=polygon")
		}
	default:
		return fmt.Errorf("unknown PRICE_PROVIDER %q (want yahoo or polygon)", cfg.PriceProvider)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return n
	}
	return fallback
}
