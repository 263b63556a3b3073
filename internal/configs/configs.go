package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppURL                 string
	DatabaseDSN            string
	RedisAddr              string
	JWTSecret              string
	AccessTokenValidity    time.Duration
	RefreshTokenValidity   time.Duration
	RefreshTokenKeyPrefix  string
	RateLimit              int
	SharedLinkRateLimit    int
	SharedLinkRateKey      string
	ShutdownTimeoutSeconds int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:            getEnv("DATABASE_DSN", "plans.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		AccessTokenValidity:    time.Duration(getEnvAsInt("ACCESS_TOKEN_MINUTES", 15)) * time.Minute,
		RefreshTokenValidity:   time.Duration(getEnvAsInt("REFRESH_TOKEN_HOURS", 24*7)) * time.Hour,
		RefreshTokenKeyPrefix:  getEnv("REFRESH_TOKEN_KEY_PREFIX", "refresh_tokens"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		SharedLinkRateLimit:    getEnvAsInt("SHARED_LINK_RATE_LIMIT_PER_MINUTE", 30),
		SharedLinkRateKey:      getEnv("SHARED_LINK_RATE_KEY_PREFIX", "shared_link_hits"),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must not be empty")
	}
	if cfg.AccessTokenValidity <= 0 {
		log.Fatal("ACCESS_TOKEN_MINUTES must be greater than 0")
	}
	if cfg.RefreshTokenValidity <= 0 {
		log.Fatal("REFRESH_TOKEN_HOURS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.SharedLinkRateLimit <= 0 {
		log.Fatal("SHARED_LINK_RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
