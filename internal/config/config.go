package config

import (
	"os"
	"strconv"
)

// StorageConfig holds the on-disk persistence settings.
// SavePath is where notes and uploaded files live, one file each.
type StorageConfig struct {
	SavePath            string
	FileLimit           int
	SingleFileSizeLimit int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables.
type AppConfig struct {
	AppHost    string
	Port       string
	StaticRoot string
	Storage    StorageConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:    getEnv("APP_HOST", "localhost:8080"),
		Port:       getEnv("PORT", "8080"),
		StaticRoot: getEnv("STATIC_ROOT", "."),
		Storage: StorageConfig{
			SavePath:            getEnv("SAVE_PATH", "_tmp"),
			FileLimit:           getEnvInt("FILE_LIMIT", 100000),
			SingleFileSizeLimit: getEnvInt("SINGLE_FILE_SIZE_LIMIT", 10240),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
