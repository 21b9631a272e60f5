package configs

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnvOnce sync.Once

// loadEnv reads the optional .env file once. Variables already set in the
// environment take precedence, so a missing file is not an error.
func loadEnv() {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

func EnvMongoURI() string {
	loadEnv()
	return os.Getenv("MONGOURI")
}

func RedisURL() string {
	loadEnv()
	return os.Getenv("REDISURL")
}

func NotificationChannel() string {
	loadEnv()
	if ch := os.Getenv("NOTIFICATION_CHANNEL"); ch != "" {
		return ch
	}
	return "notifications"
}

func EnvPort() string {
	loadEnv()
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "3006"
}

func EnvLogLevel() string {
	loadEnv()
	return os.Getenv("LOG_LEVEL")
}
