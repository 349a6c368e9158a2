package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	// APIBaseURL serves the product catalog and order history.
	// AuthBaseURL is the identity endpoint; APIKey is appended to its calls.
	APIBaseURL  string
	AuthBaseURL string
	APIKey      string

	HTTPTimeout time.Duration
}

func Load() Config {
	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:9000"),
		AuthBaseURL: getEnv("AUTH_BASE_URL", "http://localhost:9001"),
		APIKey:      getEnv("API_KEY", ""),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
