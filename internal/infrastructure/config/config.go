package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
}

type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend   string
	Capacity  int
	RedisAddr string
	TTL       time.Duration
}

// CalculationConfig carries the servicing policy knobs.
type CalculationConfig struct {
	// DayCountConvention applied when a loan does not specify one.
	DayCountConvention string
	// ResidualTarget is the allocation component that absorbs sub-cent
	// rounding residue: PRINCIPAL or INTEREST.
	ResidualTarget string
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Cache       CacheConfig
	Calculation CalculationConfig
	ServiceName string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		panic(fmt.Sprintf("CACHE_BACKEND must be memory or redis, got %q", c.Cache.Backend))
	}
}

func Load() Config {
	// A local .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9094),
		HTTPPort: getEnvInt("HTTP_PORT", 8094),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "servicing"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "servicing"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
		},
		Cache: CacheConfig{
			Backend:   getEnv("CACHE_BACKEND", "memory"),
			Capacity:  getEnvInt("CACHE_CAPACITY", 1024),
			RedisAddr: getEnv("CACHE_REDIS_ADDR", "localhost:6379"),
			TTL:       getEnvDuration("CACHE_TTL", 15*time.Minute),
		},
		Calculation: CalculationConfig{
			DayCountConvention: getEnv("DAY_COUNT_CONVENTION", "THIRTY_360"),
			ResidualTarget:     getEnv("ALLOCATION_RESIDUAL_TARGET", "PRINCIPAL"),
		},
		ServiceName: "servicing",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
