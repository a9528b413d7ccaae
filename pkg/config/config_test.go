package config

import (
	"encoding/hex"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := LoadConfig()
	if cfg.Port != "8041" {
		t.Errorf("Port = %q, want default 8041", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FORM_TOKEN_SECRET", "fixed-secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")
	t.Setenv("TELEGRAM_CHAT_ID", "chat-42")
	t.Setenv("TELEGRAM_API_BASE", "https://tg.example.com")
	t.Setenv("TELEGRAM_PROXY_URL", "http://proxy.example.com:3128")

	cfg := LoadConfig()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.FormTokenSecret != "fixed-secret" {
		t.Errorf("FormTokenSecret = %q, want fixed-secret", cfg.FormTokenSecret)
	}
	if cfg.TelegramBotToken != "bot-token" || cfg.TelegramChatID != "chat-42" {
		t.Errorf("telegram credentials = %q/%q, want bot-token/chat-42",
			cfg.TelegramBotToken, cfg.TelegramChatID)
	}
	if cfg.TelegramAPIBase != "https://tg.example.com" {
		t.Errorf("TelegramAPIBase = %q", cfg.TelegramAPIBase)
	}
	if cfg.TelegramProxyURL != "http://proxy.example.com:3128" {
		t.Errorf("TelegramProxyURL = %q", cfg.TelegramProxyURL)
	}
}

func TestLoadFormTokenSecret_Fallback(t *testing.T) {
	t.Setenv("FORM_TOKEN_SECRET", "")

	first := loadFormTokenSecret()
	if _, err := hex.DecodeString(first); err != nil {
		t.Fatalf("fallback secret %q is not hex: %v", first, err)
	}
	if len(first) != 64 {
		t.Errorf("fallback secret length = %d, want 64 hex chars", len(first))
	}

	if second := loadFormTokenSecret(); second == first {
		t.Error("fallback secret is not random across calls")
	}
}
