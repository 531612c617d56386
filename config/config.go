package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DevSecretKey signs flash cookies when SECRET_KEY is unset.
const DevSecretKey = "tasklist-dev-secret"

type Config struct {
	ServerPort  int
	SecretKey   string
	Debug       bool
	TemplateDir string
	Database    DatabaseConfig
}

type DatabaseConfig struct {
	Path string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Path: getEnv("DATABASE_PATH", "tasks.db"),
	}

	return Config{
		ServerPort:  getEnvInt("SERVER_PORT", 8080),
		SecretKey:   getEnv("SECRET_KEY", DevSecretKey),
		Debug:       getEnvBool("DEBUG", false),
		TemplateDir: getEnv("TEMPLATE_DIR", ""),
		Database:    dbConfig,
	}
}

// UsesDevSecret reports whether flash cookies are signed with the built-in key.
func (c Config) UsesDevSecret() bool {
	return c.SecretKey == DevSecretKey
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := strconv.Atoi(strings.TrimSpace(valueStr))
		if err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
		if err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}
