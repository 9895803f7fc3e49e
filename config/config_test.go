package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DB_PATH", "LOG_LEVEL", "CORS_ORIGINS", "BCRYPT_COST", "RATE_LIMIT"} {
		t.Setenv(key, "")
	}

	Load()

	assert.Equal(t, "3000", AppConfig.Port)
	assert.Equal(t, "development", AppConfig.Env)
	assert.Equal(t, "./data/poetry.db", AppConfig.DBPath)
	assert.Equal(t, "info", AppConfig.LogLevel)
	assert.Equal(t, "*", AppConfig.CORSOrigins)
	assert.Equal(t, bcrypt.DefaultCost, AppConfig.BcryptCost)
	assert.Equal(t, 200, AppConfig.RateLimit)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/tmp/poems.db")
	t.Setenv("BCRYPT_COST", "4")

	Load()

	assert.Equal(t, "8080", AppConfig.Port)
	assert.Equal(t, "/tmp/poems.db", AppConfig.DBPath)
	assert.Equal(t, 4, AppConfig.BcryptCost)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("POETRY_TEST_INT", "")
	assert.Equal(t, 7, GetEnvInt("POETRY_TEST_INT", 7))

	t.Setenv("POETRY_TEST_INT", "12")
	assert.Equal(t, 12, GetEnvInt("POETRY_TEST_INT", 7))
}
