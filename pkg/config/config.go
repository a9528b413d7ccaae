package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
)

// Config holds all application configuration values. It is filled once at
// startup and never mutated, so concurrent reads need no locking.
type Config struct {
	Port             string
	LogLevel         string
	FormTokenSecret  string
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIBase  string
	TelegramProxyURL string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:             getEnv("PORT", "8041"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		FormTokenSecret:  loadFormTokenSecret(),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		TelegramAPIBase:  os.Getenv("TELEGRAM_API_BASE"),
		TelegramProxyURL: os.Getenv("TELEGRAM_PROXY_URL"),
	}
}

// loadFormTokenSecret returns FORM_TOKEN_SECRET, or a random per-process
// secret when unset. With the fallback, tokens issued before a restart stop
// verifying; set the variable to keep tokens valid across restarts.
func loadFormTokenSecret() string {
	if secret := os.Getenv("FORM_TOKEN_SECRET"); secret != "" {
		return secret
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Error generating fallback form token secret: %v", err)
	}
	return hex.EncodeToString(buf)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
