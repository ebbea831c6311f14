package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	JWTSecret            []byte
	UploadDir            string
	ResetOperatorEmail   string
	CORSOrigins          []string
	InitialAdminName     string
	InitialAdminEmail    string
	InitialAdminPassword string
}

// Load reads .env if present, then environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:                 GetEnv("PORT", "5000"),
		JWTSecret:            []byte(GetEnv("JWT_SECRET", "change-me")),
		UploadDir:            GetEnv("UPLOAD_DIR", "./uploads"),
		ResetOperatorEmail:   GetEnv("RESET_OPERATOR_EMAIL", ""),
		CORSOrigins:          []string{GetEnv("FRONTEND_BASE_URL", "http://localhost:5173"), "http://127.0.0.1:5173"},
		InitialAdminName:     GetEnv("INITIAL_ADMIN_NAME", "Administrator"),
		InitialAdminEmail:    GetEnv("INITIAL_ADMIN_EMAIL", ""),
		InitialAdminPassword: GetEnv("INITIAL_ADMIN_PASSWORD", ""),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
