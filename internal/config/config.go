package config

import (
	"os"
)

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	Port          string
	GinMode       string
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "host=localhost user=cardtrack password=cardtrack dbname=cardtrack port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET_KEY", "default-secret-key-change-me"),
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@cardtrack.dev"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
