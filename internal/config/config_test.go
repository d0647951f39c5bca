package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"LOG_LEVEL",
	"ACTOR_BUFFER_SIZE",
	"METRICS_ENABLED",
	"DATABASE_URL",
	"KAFKA_BROKERS",
	"KAFKA_TOPIC",
}

// clearEnv unsets every variable Load reads and restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(*testing.T, *Config)
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, 10, cfg.ActorBufferSize)
				assert.False(t, cfg.MetricsEnabled)
				assert.Empty(t, cfg.Postgres.URL)
				assert.Empty(t, cfg.Kafka.Brokers)
				assert.Equal(t, "ledger_events", cfg.Kafka.Topic)
			},
		},
		{
			name: "custom values",
			envVars: map[string]string{
				"LOG_LEVEL":         "debug",
				"ACTOR_BUFFER_SIZE": "64",
				"METRICS_ENABLED":   "true",
				"DATABASE_URL":      "postgres://ledger:secret@db:5432/ledger?sslmode=disable",
				"KAFKA_BROKERS":     "kafka-1:9092, kafka-2:9092,",
				"KAFKA_TOPIC":       "custom.topic",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, 64, cfg.ActorBufferSize)
				assert.True(t, cfg.MetricsEnabled)
				assert.Equal(t, "postgres://ledger:secret@db:5432/ledger?sslmode=disable", cfg.Postgres.URL)
				assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
				assert.Equal(t, "custom.topic", cfg.Kafka.Topic)
			},
		},
		{
			name: "invalid numbers fall back to defaults",
			envVars: map[string]string{
				"ACTOR_BUFFER_SIZE": "-3",
				"METRICS_ENABLED":   "maybe",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10, cfg.ActorBufferSize)
				assert.False(t, cfg.MetricsEnabled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=warn\nKAFKA_TOPIC=from.file\n"), 0o600))
	t.Setenv("KAFKA_TOPIC", "from.env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "from.env", cfg.Kafka.Topic)
}

func TestLoad_MalformedEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=\"debug\n"), 0o600))

	cfg, err := Load(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Nil(t, cfg)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_KEY", "")
	assert.Equal(t, "default", getEnv("TEST_KEY", "default"))

	t.Setenv("TEST_KEY", "custom")
	assert.Equal(t, "custom", getEnv("TEST_KEY", "default"))
}
