package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Development bool
	// HTTP configuration
	Port int
	// Storage configuration
	DatabasePath string
	// Static assets configuration
	PublicDir string

	// Redirect destinations after a confirmed purchase. Plans whose code
	// contains PremiumPlanMarker go to PremiumChannelURL, everything else
	// to DefaultChannelURL.
	PremiumPlanMarker string
	PremiumChannelURL string
	DefaultChannelURL string

	// Notification configuration
	TelegramBotToken string
	TelegramChatID   string
}

// LoadConfig loads the configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Development:       getEnvAsBool("DEVELOPMENT", false),
		Port:              getEnvAsInt("PORT", 3000),
		DatabasePath:      getEnv("DATABASE_PATH", "./tokens.db"),
		PublicDir:         getEnv("PUBLIC_DIR", "./public"),
		PremiumPlanMarker: getEnv("PREMIUM_PLAN_MARKER", "hadrielle"),
		PremiumChannelURL: getEnv("PREMIUM_CHANNEL_URL", "https://t.me/+UEmVhhccVMw3ODcx"),
		DefaultChannelURL: getEnv("DEFAULT_CHANNEL_URL", "https://t.me/joinchat"),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:    getEnv("TELEGRAM_CHAT_ID", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are properly set
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}

	if c.PublicDir == "" {
		return fmt.Errorf("PUBLIC_DIR is required")
	}

	if c.PremiumChannelURL == "" {
		return fmt.Errorf("PREMIUM_CHANNEL_URL is required")
	}

	if c.DefaultChannelURL == "" {
		return fmt.Errorf("DEFAULT_CHANNEL_URL is required")
	}

	return nil
}

// Helper functions to read environment variables
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
