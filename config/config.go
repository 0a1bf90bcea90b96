package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Order ID generation modes. "time" preserves the original short base-36
// scheme; "uuid" trades the short ID for collision safety.
const (
	OrderIDModeTime = "time"
	OrderIDModeUUID = "uuid"
)

type Config struct {
	Port    string
	Env     string
	BaseURL string

	RedisURL string
	CartTTL  time.Duration

	StripeSecretKey       string
	StripeWebhookSecret   string
	CoinbaseAPIKey        string
	CoinbaseWebhookSecret string

	ChainRPCURL        string
	MembershipContract string

	SMTPHost    string
	SMTPPort    string
	SMTPUser    string
	SMTPPass    string
	AdminEmails []string

	// Optional Postgres DSN for the notification log. Empty disables
	// persistence; send attempts are still logged.
	DatabaseDSN string

	OrderIDMode   string
	OrderTimezone string
}

func Load() Config {
	// Best effort: a missing .env file is fine in containers.
	_ = godotenv.Load()

	return Config{
		Port:    getEnv("PORT", "8080"),
		Env:     getEnv("APP_ENV", "development"),
		BaseURL: getEnv("BASE_URL", "http://localhost:3000"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:  time.Hour * 24 * 7, // default 7 days

		StripeSecretKey:       os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:   os.Getenv("STRIPE_WEBHOOK_SECRET"),
		CoinbaseAPIKey:        os.Getenv("COINBASE_COMMERCE_API_KEY"),
		CoinbaseWebhookSecret: os.Getenv("COINBASE_WEBHOOK_SECRET"),

		ChainRPCURL:        getEnv("CHAIN_RPC_URL", "https://mainnet.base.org"),
		MembershipContract: getEnv("MEMBERSHIP_CONTRACT", "0x9b931844FbaA55Bd8E709909468DA0aD2be26052"),

		SMTPHost:    os.Getenv("SMTP_HOST"),
		SMTPPort:    getEnv("SMTP_PORT", "587"),
		SMTPUser:    os.Getenv("SMTP_USER"),
		SMTPPass:    os.Getenv("SMTP_PASS"),
		AdminEmails: splitList(getEnv("ADMIN_EMAILS", "hello@waatech.xyz")),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		OrderIDMode:   getEnv("ORDER_ID_MODE", OrderIDModeTime),
		OrderTimezone: getEnv("ORDER_TIMEZONE", "America/New_York"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
