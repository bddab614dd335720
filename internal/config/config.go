package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	JWTSecret      string
	TokenDuration  time.Duration
	DailySalt      string
	LogLevel       string
	BadWordsURL    string
	AWSRegion      string
	SESFromEmail   string
	SESFromName    string
	AppBaseURL     string
	APIBaseURL     string
	LocalStorePath string
	FeedbackDelay  time.Duration
	HTTPTimeout    time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "5000"),
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./spacefun.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", "local_dev_secret"),
		TokenDuration:  getDuration("TOKEN_DURATION", 30*24*time.Hour),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BadWordsURL:    getEnv("BAD_WORDS_URL", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "SpaceFun"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:5000"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:5000"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./spacefun-local.db"),
		FeedbackDelay:  getDuration("FEEDBACK_DELAY", 2*time.Second),
		HTTPTimeout:    getDuration("HTTP_TIMEOUT", 10*time.Second),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go duration syntax ("2s") or a bare number of seconds.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
