// Package config loads service settings from environment variables, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Observation refresh.
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	IEMBaseURL      string
	StationFile     string

	// Snapshot retention.
	SnapshotMaxItems  int
	SnapshotRetention time.Duration

	// Render response cache.
	RenderCacheSize int

	// Optional snapshot publishing (feature-flagged via KAFKA_ENABLED).
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first if
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	refreshInterval, err := parseDuration("REFRESH_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	snapshotRetention, err := parseDuration("SNAPSHOT_RETENTION", "6h")
	if err != nil {
		return nil, err
	}

	kafkaEnabled := envOrDefault("KAFKA_ENABLED", "false") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		RefreshInterval: refreshInterval,
		FetchTimeout:    fetchTimeout,
		IEMBaseURL:      envOrDefault("IEM_BASE_URL", "https://mesonet.agron.iastate.edu"),
		StationFile:     os.Getenv("STATION_FILE"),

		SnapshotMaxItems:  envOrDefaultInt("SNAPSHOT_MAX_ITEMS", 2000),
		SnapshotRetention: snapshotRetention,

		RenderCacheSize: envOrDefaultInt("RENDER_CACHE_SIZE", 64),

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "surface-observations"),
	}

	if cfg.RefreshInterval < time.Minute {
		return nil, errors.New("REFRESH_INTERVAL must be at least 1m")
	}
	if cfg.SnapshotMaxItems <= 0 {
		return nil, errors.New("SNAPSHOT_MAX_ITEMS must be positive")
	}
	if cfg.RenderCacheSize <= 0 {
		return nil, errors.New("RENDER_CACHE_SIZE must be positive")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && strings.TrimSpace(cfg.KafkaTopic) == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
