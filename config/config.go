// Package config reads the service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr    string
	GatewayAddr string
	RedisAddr   string
	PostgresURL string

	PaymentDelay        time.Duration
	CheckoutParallelism int
	IdempotencyTTL      time.Duration
	LogLevel            logrus.Level
}

// Load reads the environment, after loading .env.local and .env if present.
func Load() (Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	paymentDelay, err := getEnvAsDuration("PAYMENT_DELAY", 2*time.Second)
	if err != nil {
		return Config{}, err
	}

	idempotencyTTL, err := getEnvAsDuration("IDEMPOTENCY_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	parallelism, err := getEnvAsInt("CHECKOUT_PARALLELISM", 4)
	if err != nil {
		return Config{}, err
	}
	if parallelism < 1 {
		return Config{}, fmt.Errorf("CHECKOUT_PARALLELISM must be at least 1, got %d", parallelism)
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing LOG_LEVEL: %w", err)
	}

	return Config{
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		GatewayAddr:         os.Getenv("GATEWAY_ADDR"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		PostgresURL:         os.Getenv("POSTGRES_URL"),
		PaymentDelay:        paymentDelay,
		CheckoutParallelism: parallelism,
		IdempotencyTTL:      idempotencyTTL,
		LogLevel:            level,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
