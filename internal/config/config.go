package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// Chat
	RecentMessageLimit = 100
	MessageCacheTTL    = 24 * time.Hour

	// Auth
	TokenLifetime = 72 * time.Hour

	// Posts
	ExpiryScanInterval = 5 * time.Minute
)

// Config carries everything read from the environment at startup.
type Config struct {
	DatabaseDSN string
	RedisAddr   string
	RedisDB     int
	JWTSecret   string
	HTTPAddr    string

	// Telegram ops bot; both empty disables the bot.
	BotToken    string
	AdminChatID int64
}

// Load reads the configuration from environment variables. The caller is
// expected to have loaded .env (godotenv) beforehand in development.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseDSN: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "user"),
			envOr("DB_PASSWORD", "password"),
			envOr("DB_NAME", "meetgodb"),
			envOr("DB_PORT", "5432"),
		),
		RedisAddr: envOr("REDIS_ADDR", "localhost:6379"),
		HTTPAddr:  envOr("HTTP_ADDR", ":8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		BotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if v := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &cfg.AdminChatID); err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
