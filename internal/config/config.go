package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
	GeminiTimeout time.Duration

	// Chat
	ChatRateLimit     int
	BlockedWordsExtra []string

	// Redis (reply cache, optional)
	RedisURL      string
	ReplyCacheTTL time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Frontend
	FrontendURL string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	apiKey, err := requireEnv("GEMINI_API_KEY")
	if err != nil {
		return nil, err
	}

	env := getEnvOrDefault("ENV", "development")
	defaultFormat := "console"
	if env == "production" {
		defaultFormat = "json"
	}

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "5000"),
		Env:               env,
		GeminiAPIKey:      apiKey,
		GeminiBaseURL:     getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:       getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		GeminiTimeout:     getEnvAsDurationOrDefault("GEMINI_TIMEOUT", 30*time.Second),
		ChatRateLimit:     getEnvAsIntOrDefault("CHAT_RATE_LIMIT", 30),
		BlockedWordsExtra: getEnvAsList("BLOCKED_WORDS_EXTRA"),
		RedisURL:          getEnvOrDefault("REDIS_URL", ""),
		ReplyCacheTTL:     getEnvAsDurationOrDefault("REPLY_CACHE_TTL", time.Hour),
		LogLevel:          getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         getEnvOrDefault("LOG_FORMAT", defaultFormat),
		FrontendURL:       getEnvOrDefault("FRONTEND_URL", "*"),
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return val, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

// getEnvAsList splits a comma separated variable, dropping blank entries.
func getEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
