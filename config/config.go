package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	DBPath     string

	// Analysis cache
	CacheBackend string // memory or redis
	RedisAddr    string
	RedisDB      int
	StaleTime    time.Duration
	CacheTTL     time.Duration

	// Price source
	PriceSource  string // mock or coingecko
	CoinGeckoURL string

	// Update check
	UpdateManifestURL string
	UpdateInterval    time.Duration

	// Outbound HTTP
	HTTPTimeout    time.Duration
	RequestsPerSec int
}

// Load reads configuration from the environment, loading a .env file first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8090"),
		GinMode:           getEnv("GIN_MODE", "release"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBPath:            getEnv("DB_PATH", "cryptomaster.db"),
		CacheBackend:      strings.ToLower(getEnv("CACHE_BACKEND", "memory")),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		StaleTime:         time.Duration(getEnvInt("ANALYSIS_STALE_MINUTES", 15)) * time.Minute,
		CacheTTL:          time.Duration(getEnvInt("ANALYSIS_CACHE_TTL_HOURS", 24)) * time.Hour,
		PriceSource:       strings.ToLower(getEnv("PRICE_SOURCE", "mock")),
		CoinGeckoURL:      getEnv("COINGECKO_URL", "https://api.coingecko.com/api/v3"),
		UpdateManifestURL: getEnv("UPDATE_MANIFEST_URL", ""),
		UpdateInterval:    time.Duration(getEnvInt("UPDATE_INTERVAL_HOURS", 24)) * time.Hour,
		HTTPTimeout:       time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		RequestsPerSec:    getEnvInt("HTTP_RPS", 5),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
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
