package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	DataDir                string
	ServerPort             string
	FrontendURL            string
	ServerDebugMode        bool
	WeatherRefreshInterval time.Duration
	WeatherFetchTimeout    time.Duration
	WeatherMaxRetries      int
	WeatherInitialBackoff  time.Duration
	RateLimit              string
}

// Load loads configuration from environment variables. Numeric knobs arrive
// already clamped so the rest of the code never re-validates them.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:                getEnv("DATA_DIR", "taskdeck_data"),
		ServerPort:             getEnv("SERVER_PORT", "8080"),
		FrontendURL:            getEnv("FRONTEND_URL", "http://localhost:3000"),
		ServerDebugMode:        getEnvBool("SERVER_DEBUG_MODE", false),
		WeatherRefreshInterval: time.Duration(clamp(getEnvInt("WEATHER_REFRESH_INTERVAL", 600), 30, 86400)) * time.Second,
		WeatherFetchTimeout:    time.Duration(clamp(getEnvInt("WEATHER_FETCH_TIMEOUT", 10), 1, 120)) * time.Second,
		WeatherMaxRetries:      clamp(getEnvInt("WEATHER_MAX_RETRIES", 3), 1, 10),
		WeatherInitialBackoff:  time.Duration(clamp(getEnvInt("WEATHER_BACKOFF_SECONDS", 1), 1, 60)) * time.Second,
		RateLimit:              getEnv("RATE_LIMIT", "5-S"),
	}

	return cfg, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
