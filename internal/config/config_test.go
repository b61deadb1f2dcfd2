package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "https://mesonet.agron.iastate.edu", cfg.IEMBaseURL)
	assert.Empty(t, cfg.StationFile)
	assert.Equal(t, 2000, cfg.SnapshotMaxItems)
	assert.Equal(t, 6*time.Hour, cfg.SnapshotRetention)
	assert.Equal(t, 64, cfg.RenderCacheSize)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "surface-observations", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REFRESH_INTERVAL", "10m")
	t.Setenv("FETCH_TIMEOUT", "15s")
	t.Setenv("IEM_BASE_URL", "http://localhost:9999")
	t.Setenv("STATION_FILE", "/data/APT_BASE.csv")
	t.Setenv("SNAPSHOT_MAX_ITEMS", "500")
	t.Setenv("SNAPSHOT_RETENTION", "12h")
	t.Setenv("RENDER_CACHE_SIZE", "128")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-obs")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "http://localhost:9999", cfg.IEMBaseURL)
	assert.Equal(t, "/data/APT_BASE.csv", cfg.StationFile)
	assert.Equal(t, 500, cfg.SnapshotMaxItems)
	assert.Equal(t, 12*time.Hour, cfg.SnapshotRetention)
	assert.Equal(t, 128, cfg.RenderCacheSize)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-obs", cfg.KafkaTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "-5m")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_RefreshIntervalTooShort(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "10s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_InvalidSnapshotMaxItems(t *testing.T) {
	t.Setenv("SNAPSHOT_MAX_ITEMS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SNAPSHOT_MAX_ITEMS")
}

func TestLoad_InvalidRenderCacheSize(t *testing.T) {
	t.Setenv("RENDER_CACHE_SIZE", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RENDER_CACHE_SIZE")
}

func TestLoad_KafkaEnabledWithoutTopic(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_TOPIC", " ")
	_, err := Load()
	require.Error(t, err)
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, parseBrokers("a:1, b:2"))
	assert.Empty(t, parseBrokers(" , "))
}
