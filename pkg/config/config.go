package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DatabaseURL         string
	FirebaseCredentials string
	GoogleProjectID     string
	PubSubSubscription  string
	AdminCode           string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=farmvet port=5432 sslmode=disable"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		PubSubSubscription:  getEnv("PUBSUB_SUBSCRIPTION", "farm-events-sub"),
		AdminCode:           getEnv("ADMIN_CODE", "FARMVET2024"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
