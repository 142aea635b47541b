package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	JWTAlgorithm     string
	OTPExpirySeconds int
	UploadDir        string

	SMSApiURL string // optional out-of-band OTP delivery endpoint
	SMSApiKey string
}

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "3000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		JWTAlgorithm:     getEnv("JWT_ALGORITHM", "HS256"),
		OTPExpirySeconds: getEnvInt("OTP_EXPIRY_SECONDS", 300),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),

		SMSApiURL: getEnv("SMS_API_URL", ""),
		SMSApiKey: getEnv("SMS_API_KEY", ""),
	}

	// Validate critical configuration
	if cfg.JWTSecret == "change-me" {
		log.Println("Warning: Using default JWT_SECRET. Update it in your environment.")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL is not set.")
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
