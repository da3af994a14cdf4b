package config

import (
	"errors"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	HTTPAddr    string
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	JWTSecret         []byte
	TokenRefreshGrace time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	Argon2MemoryKB    uint32
	Argon2Time        uint32
	Argon2Parallelism uint8
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "phast-auth"),
		HTTPAddr:    EnvDefault("HTTP_ADDR", ":8080"),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
		TokenRefreshGrace: EnvDurationDefault("TOKEN_REFRESH_GRACE", 0),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   EnvDefault("KAFKA_TOPIC", "user_events"),

		Argon2MemoryKB:    uint32(EnvUintDefault("ARGON2_MEMORY_KB", 64*1024, math.MaxUint32)),
		Argon2Time:        uint32(EnvUintDefault("ARGON2_TIME", 4, math.MaxUint32)),
		Argon2Parallelism: uint8(EnvUintDefault("ARGON2_PARALLELISM", 1, math.MaxUint8)),
	}
}

func (c Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) == 0 {
		errs = append(errs, errors.New("missing required env JWT_SECRET"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("missing required env DATABASE_URL"))
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, errors.New("DB_DRIVER must be postgres or sqlite"))
	}
	if c.TokenRefreshGrace < 0 {
		errs = append(errs, errors.New("TOKEN_REFRESH_GRACE must not be negative"))
	}
	return errors.Join(errs...)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// EnvUintDefault returns def when the value is unset, not a number or above max.
func EnvUintDefault(key string, def, max uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n > max {
		log.Printf("Notice: %s=%q is out of range, using %d", key, v, def)
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
