package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the full service configuration loaded from the environment.
type Config struct {
	Env  string
	Port string

	// persistence
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// generative backend; empty provider disables the backend and the
	// deterministic fallbacks carry every request
	Provider string

	// external league data
	SleeperBaseURL  string
	PlayerCacheTTL  time.Duration
	UpstreamTimeout time.Duration

	// sessions
	SessionDuration        time.Duration
	SessionCleanupSchedule string

	// billing
	StripeSecretKey    string
	ProPriceCents      int64
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	// cors
	AllowedOrigins []string
}

// LoadConfig reads configuration from the environment, picking up a local
// .env file first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnvOrDefault("APP_ENV", "production"),
		Port: getEnvOrDefault("PORT", "8080"),

		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnvOrDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getEnvOrDefault("POSTGRES_DB", "dynastytrade"),
		PostgresSSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),

		Provider: getEnvOrDefault("AI_PROVIDER", ""),

		SleeperBaseURL:  getEnvOrDefault("SLEEPER_BASE_URL", "https://api.sleeper.app/v1"),
		PlayerCacheTTL:  getEnvDuration("PLAYER_CACHE_TTL", time.Hour),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),

		SessionDuration:        getEnvDuration("SESSION_DURATION", 24*time.Hour),
		SessionCleanupSchedule: getEnvOrDefault("SESSION_CLEANUP_SCHEDULE", "@hourly"),

		StripeSecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
		ProPriceCents:      getEnvInt64("PRO_PRICE_CENTS", 500),
		CheckoutSuccessURL: getEnvOrDefault("CHECKOUT_SUCCESS_URL", "http://localhost:8080/payment-success"),
		CheckoutCancelURL:  getEnvOrDefault("CHECKOUT_CANCEL_URL", "http://localhost:8080/payment-cancel"),

		AllowedOrigins: []string{getEnvOrDefault("FRONTEND_ORIGIN", "http://localhost:5173")},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Provider != "" && cfg.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + cfg.Provider + ". Currently supported: gemini")
	}
	if cfg.ProPriceCents <= 0 {
		return errors.New("PRO_PRICE_CENTS must be positive")
	}
	if cfg.SessionDuration <= 0 {
		return errors.New("SESSION_DURATION must be positive")
	}
	return nil
}

// PostgresDSN assembles the gorm connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
