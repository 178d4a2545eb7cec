package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	StoreDriver   string
	WorkbookPath  string
	DatabaseURL   string
	UploadDir     string
	RedisURL      string
	AdminUsername string
	AdminPassword string
	DeleteCode    string
	SessionTTL    int
	LogMode       string
	LogDir        string
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		StoreDriver:   getEnv("STORE_DRIVER", "workbook"),
		WorkbookPath:  getEnv("WORKBOOK_PATH", "orders.xlsx"),
		DatabaseURL:   getEnv("DATABASE_URL", "orders.db"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "changeme"),
		DeleteCode:    getEnv("DELETE_CODE", "changeme"),
		SessionTTL:    getEnvAsInt("SESSION_TTL", 3600),
		LogMode:       getEnv("LOG_MODE", "debug"),
		LogDir:        getEnv("LOG_DIR", "logs"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
