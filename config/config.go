package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	RedisAddr string
	HTTPPort  string
	ShareSalt string
}

func Load() *Config {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	return &Config{
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:  getEnv("HTTP_PORT", "8080"),
		ShareSalt: getEnv("SHARE_SALT", "madurez42001"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
