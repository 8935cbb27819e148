package config

import (
	"naskah/pkg/logger"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	JWTSecret  string // empty disables auth
	LogLevel   string
	CORSOrigin string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Debug("No .env file found, using environment variables from OS")
	}

	return &Config{
		Port:       getenv("PORT", "8080"),
		JWTSecret:  getenv("JWT_SECRET", ""),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		CORSOrigin: getenv("CORS_ORIGIN", "*"),
	}
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
