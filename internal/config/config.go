package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the transactions engine
type Config struct {
	LogLevel        string
	ActorBufferSize int
	MetricsEnabled  bool
	Postgres        PostgresConfig
	Kafka           KafkaConfig
}

// PostgresConfig holds the snapshot database connection.
// An empty URL keeps snapshots in memory.
type PostgresConfig struct {
	URL string
}

// KafkaConfig holds event publishing settings.
// No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load reads optional .env files and then the environment, falling back to
// defaults. Real environment variables always win over file values.
func Load(envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ActorBufferSize: getEnvInt("ACTOR_BUFFER_SIZE", 10),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", false),
		Postgres: PostgresConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "ledger_events"),
		},
	}, nil
}

// loadEnvFiles skips files that do not exist and reports malformed ones
func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		err := godotenv.Load(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value if not set
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
