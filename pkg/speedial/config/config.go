package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DataPath string
	BaseURL  string
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:     getEnv("PORT", "8080"),
		DataPath: getEnv("SPEEDIAL_DATA_PATH", "data/links.json"),
		BaseURL:  getEnv("SPEEDIAL_BASE_URL", "http://localhost:8080"),
		LogLevel: getEnv("SPEEDIAL_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
