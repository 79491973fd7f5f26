package app

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration for the trip service, loaded from
// environment variables with sensible defaults.
type Config struct {
	Addr             string
	SearchServiceURL string
	SearchTimeout    time.Duration
	CacheBackend     string // "memory" or "redis"
	CacheTTL         time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RateLimit        int
	RateWindow       time.Duration
}

// LoadConfig reads and validates the environment. Invalid values fail fast.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Addr:             ":" + getEnv("PORT", "8080"),
		SearchServiceURL: getEnv("SEARCH_SERVICE_URL", "http://localhost:8090"),
		SearchTimeout:    5 * time.Second,
		CacheBackend:     getEnv("CACHE_BACKEND", "memory"),
		CacheTTL:         30 * time.Second,
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RateLimit:        10,
		RateWindow:       time.Minute,
	}

	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "redis" {
		return nil, fmt.Errorf("CACHE_BACKEND must be \"memory\" or \"redis\", got %q", cfg.CacheBackend)
	}

	if s := os.Getenv("SEARCH_TIMEOUT_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SEARCH_TIMEOUT_SECONDS must be a positive integer, got %q", s)
		}
		cfg.SearchTimeout = time.Duration(v) * time.Second
	}

	if s := os.Getenv("CACHE_TTL_SECONDS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("CACHE_TTL_SECONDS must be a positive integer, got %q", s)
		}
		cfg.CacheTTL = time.Duration(v) * time.Second
	}

	if s := os.Getenv("REDIS_DB"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("REDIS_DB must be a non-negative integer, got %q", s)
		}
		cfg.RedisDB = v
	}

	if s := os.Getenv("RATE_LIMIT"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("RATE_LIMIT must be a positive integer, got %q", s)
		}
		cfg.RateLimit = v
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
