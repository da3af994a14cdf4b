package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVICE_NAME", "HTTP_ADDR", "LOG_LEVEL", "DB_DRIVER", "DATABASE_URL", "JWT_SECRET",
		"TOKEN_REFRESH_GRACE", "KAFKA_BROKERS", "KAFKA_TOPIC",
		"ARGON2_MEMORY_KB", "ARGON2_TIME", "ARGON2_PARALLELISM",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "phast-auth", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "user_events", cfg.KafkaTopic)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.Zero(t, cfg.TokenRefreshGrace)
	assert.EqualValues(t, 64*1024, cfg.Argon2MemoryKB)
	assert.EqualValues(t, 4, cfg.Argon2Time)
	assert.EqualValues(t, 1, cfg.Argon2Parallelism)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_REFRESH_GRACE", "72h")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("ARGON2_TIME", "2")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, 72*time.Hour, cfg.TokenRefreshGrace)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.EqualValues(t, 2, cfg.Argon2Time)
	require.NoError(t, cfg.Validate())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	t.Parallel()

	err := Config{DBDriver: "mysql", TokenRefreshGrace: -time.Second}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "DB_DRIVER")
	assert.Contains(t, err.Error(), "TOKEN_REFRESH_GRACE")
}

func TestEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_DUR", "soon")

	assert.Equal(t, 7, EnvIntDefault("X_INT", 7))
	assert.Equal(t, time.Minute, EnvDurationDefault("X_DUR", time.Minute))
	assert.Equal(t, "def", EnvDefault("X_MISSING", "def"))
}

func TestLoad_Argon2OutOfRangeFallsBack(t *testing.T) {
	t.Setenv("ARGON2_PARALLELISM", "300")
	t.Setenv("ARGON2_TIME", "-2")
	t.Setenv("ARGON2_MEMORY_KB", "99999999999")

	cfg := Load()

	assert.EqualValues(t, 1, cfg.Argon2Parallelism)
	assert.EqualValues(t, 4, cfg.Argon2Time)
	assert.EqualValues(t, 64*1024, cfg.Argon2MemoryKB)
}

func TestEnvUintDefault(t *testing.T) {
	t.Setenv("PHAST_TEST_UINT", "255")
	assert.EqualValues(t, 255, EnvUintDefault("PHAST_TEST_UINT", 1, 255))

	t.Setenv("PHAST_TEST_UINT", "256")
	assert.EqualValues(t, 1, EnvUintDefault("PHAST_TEST_UINT", 1, 255))

	t.Setenv("PHAST_TEST_UINT", "abc")
	assert.EqualValues(t, 7, EnvUintDefault("PHAST_TEST_UINT", 7, 255))
}
