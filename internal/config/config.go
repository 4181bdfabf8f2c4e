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
	InputPath string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	LoadBatchSize int

	// Natural Earth region enrichment. Empty path disables it.
	NaturalEarthPath string
	RegionCacheSize  int

	// Kafka run-report publishing. Empty topic disables it.
	KafkaBrokers     []string
	KafkaReportTopic string
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, err := envInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	batchSize, err := envInt("LOAD_BATCH_SIZE", 10000)
	if err != nil {
		return nil, err
	}
	cacheSize, err := envInt("REGION_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := time.ParseDuration(envOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	cfg := &Config{
		InputPath: envOrDefault("INPUT_CSV_PATH", "data/All_Sites_Times_Daily_Averages_AOD20.csv"),

		DBHost:     envOrDefault("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     envOrDefault("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     envOrDefault("DB_NAME", "aerosol_dw"),
		DBSSLMode:  envOrDefault("DB_SSLMODE", "disable"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		LoadBatchSize: batchSize,

		NaturalEarthPath: os.Getenv("NATURAL_EARTH_PATH"),
		RegionCacheSize:  cacheSize,

		KafkaBrokers:     splitBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaReportTopic: os.Getenv("KAFKA_REPORT_TOPIC"),
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_CSV_PATH is required")
	}
	if cfg.DBName == "" {
		return nil, errors.New("DB_NAME is required")
	}
	if cfg.LoadBatchSize <= 0 {
		return nil, errors.New("LOAD_BATCH_SIZE must be positive")
	}
	if cfg.KafkaReportTopic != "" && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_REPORT_TOPIC is set but KAFKA_BROKERS is not")
	}

	return cfg, nil
}

// DSN renders the Postgres connection string for database/sql + lib/pq.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// ReportingEnabled reports whether the Kafka run-report publisher is configured.
func (c *Config) ReportingEnabled() bool {
	return c.KafkaReportTopic != "" && len(c.KafkaBrokers) > 0
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func splitBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
