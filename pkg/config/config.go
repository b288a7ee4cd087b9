package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	MetricsPort             string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	FirebaseCredentialsPath string
	FeedBaseURL             string
	FeedArea                string
	FeedTimeout             time.Duration
	PollSchedule            string
	PollTimeout             time.Duration
	DispatchConcurrency     int
}

func Load() *Config {
	// Load environment variables from a .env file when present.
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "weather"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		FeedBaseURL:             getEnv("FEED_BASE_URL", "https://api.weather.gov"),
		FeedArea:                getEnv("FEED_AREA", "SD"),
		FeedTimeout:             getDurationEnv("FEED_TIMEOUT", 30*time.Second),
		PollSchedule:            getEnv("POLL_SCHEDULE", "@every 5m"),
		PollTimeout:             getDurationEnv("POLL_TIMEOUT", 2*time.Minute),
		DispatchConcurrency:     getIntEnv("DISPATCH_CONCURRENCY", 25),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
