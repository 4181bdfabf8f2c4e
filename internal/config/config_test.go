package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"INPUT_CSV_PATH", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
		"DB_NAME", "DB_SSLMODE", "HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT",
		"SHUTDOWN_TIMEOUT", "LOAD_BATCH_SIZE", "NATURAL_EARTH_PATH",
		"REGION_CACHE_SIZE", "KAFKA_BROKERS", "KAFKA_REPORT_TOPIC",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/All_Sites_Times_Daily_Averages_AOD20.csv", cfg.InputPath)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "aerosol_dw", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10000, cfg.LoadBatchSize)
	assert.Equal(t, 1000, cfg.RegionCacheSize)
	assert.Empty(t, cfg.NaturalEarthPath)
	assert.False(t, cfg.ReportingEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("INPUT_CSV_PATH", "/tmp/in.csv")
	t.Setenv("DB_HOST", "warehouse.internal")
	t.Setenv("DB_PORT", "15432")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("LOAD_BATCH_SIZE", "500")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("KAFKA_REPORT_TOPIC", "etl-run-reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/in.csv", cfg.InputPath)
	assert.Equal(t, "warehouse.internal", cfg.DBHost)
	assert.Equal(t, 15432, cfg.DBPort)
	assert.Equal(t, 500, cfg.LoadBatchSize)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.ReportingEnabled())
}

func TestLoad_DSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=aerosol_dw sslmode=disable",
		cfg.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "DB_PORT", "not-a-port"},
		{"non-numeric batch size", "LOAD_BATCH_SIZE", "many"},
		{"zero batch size", "LOAD_BATCH_SIZE", "0"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"report topic without brokers", "KAFKA_REPORT_TOPIC", "etl-run-reports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
