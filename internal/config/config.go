package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT      string
	MAX_UPLOAD_MB int
	// session config
	SESSION_TTL time.Duration
	// template layout override (empty means built-in layout)
	LAYOUT_FILE string
	// logger config
	LOG_FILE_PATH string
}

// LoadEnvConfig reads the optional .env file and materializes the
// process configuration with typed fallbacks.
func LoadEnvConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:      getEnvString("APP_PORT", "8080"),
		MAX_UPLOAD_MB: getEnvInt("MAX_UPLOAD_MB", 16),
		SESSION_TTL:   getEnvDuration("SESSION_TTL", 2*time.Hour),
		LAYOUT_FILE:   getEnvString("LAYOUT_FILE", ""),
		LOG_FILE_PATH: getEnvString("LOG_FILE_PATH", ""),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
