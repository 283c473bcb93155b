package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string
	AppEnv    string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	// Deployed environments inject real env vars; .env is for local dev only.
	if os.Getenv("APP_ENV") == "production" {
		log.Println("running in production, using system ENV")
	} else if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system ENV")
	}

	AppEnv = GetEnvDefault("APP_ENV", "development")
	JWTSecret = GetEnv("JWT_SECRET")

	if JWTSecret == "" {
		log.Println("warning: JWT_SECRET is not set, mutating fee routes will reject all tokens")
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
