// Package config reads service settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     string
	DBPath   string
	SeedPath string

	// Optional backends; empty disables them.
	DatabaseURL string
	RedisAddr   string

	RouteCacheTTL  time.Duration
	TransitLRUSize int
	FlagshipLineID string

	LogLevel string
	LogFile  string
}

// Load reads the configuration. Call godotenv.Load first to pick up a .env file.
func Load() Config {
	return Config{
		Port:           Get("PORT", "8080"),
		DBPath:         Get("DB_PATH", "data/app.db"),
		SeedPath:       Get("SEED_PATH", ""),
		DatabaseURL:    Get("DATABASE_URL", ""),
		RedisAddr:      Get("REDIS_ADDR", ""),
		RouteCacheTTL:  GetDuration("ROUTE_CACHE_TTL", time.Hour),
		TransitLRUSize: GetInt("TRANSIT_LRU_SIZE", 1024),
		FlagshipLineID: Get("FLAGSHIP_LINE_ID", "jr-yamanote"),
		LogLevel:       Get("LOG_LEVEL", "info"),
		LogFile:        Get("LOG_FILE", ""),
	}
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := Get(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	if v := Get(key, ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
