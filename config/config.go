package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port        string
	Env         string
	DBPath      string
	LogLevel    string
	CORSOrigins string
	BcryptCost  int
	// RateLimit is the number of API requests allowed per client IP per minute
	RateLimit int
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:        GetEnv("PORT", "3000"),
		Env:         GetEnv("ENV", "development"),
		DBPath:      GetEnv("DB_PATH", "./data/poetry.db"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "*"),
		BcryptCost:  GetEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		RateLimit:   GetEnvInt("RATE_LIMIT", 200),
	}

	if AppConfig.BcryptCost < bcrypt.MinCost || AppConfig.BcryptCost > bcrypt.MaxCost {
		log.Fatalf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if AppConfig.RateLimit < 1 {
		log.Fatal("RATE_LIMIT must be positive")
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return n
}
