package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment
// variables.
type Config struct {
	Env              string
	HTTPAddr         string
	StoreBaseURL     string
	StoreAPIKey      string
	StoreTimeout     time.Duration
	KafkaBrokers     []string
	KafkaTopicPrefix string
	OutboxInterval   time.Duration
	IdempotencyTTL   time.Duration
	MetricsEnabled   bool
	ServiceName      string
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		StoreBaseURL:     strings.TrimRight(os.Getenv("STORE_BASE_URL"), "/"),
		StoreAPIKey:      os.Getenv("STORE_API_KEY"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		ServiceName:      getEnv("SERVICE_NAME", "staybook"),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	storeTimeout, err := parseDurationEnv("STORE_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.StoreTimeout = storeTimeout

	interval, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxInterval = interval

	idempotencyTTL, err := parseDurationEnv("IDEMP_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.IdempotencyTTL = idempotencyTTL

	metricsEnabled, err := parseBoolEnv("METRICS_ENABLED", true)
	if err != nil {
		return Config{}, err
	}
	cfg.MetricsEnabled = metricsEnabled

	if cfg.StoreBaseURL == "" {
		return Config{}, fmt.Errorf("STORE_BASE_URL is required")
	}
	if cfg.StoreAPIKey == "" {
		return Config{}, fmt.Errorf("STORE_API_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := strings.ToLower(os.Getenv(key))
	switch raw {
	case "":
		return def, nil
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s: %q", key, raw)
	}
}
