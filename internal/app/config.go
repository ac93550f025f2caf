package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// StorageDriver выбирает реализацию хранилища.
type StorageDriver string

const (
	// StorageDriverMemory — in-memory хранилище для разработки и тестов.
	StorageDriverMemory StorageDriver = "memory"
	// StorageDriverPostgres — postgres-хранилище для продакшена.
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес основного API-сервера.
	HTTPAddr string
	// MetricsAddr — адрес сервера метрик и health-проверок.
	MetricsAddr string

	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool

	// RedisAddr пустой — сессии живут в памяти процесса.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// KafkaBrokers пустой — события публикуются только в лог.
	KafkaBrokers string
	KafkaTopic   string

	AllowedOrigins []string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
}

// DefaultConfig возвращает конфигурацию для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		SessionTTL:          24 * time.Hour,
		OutboxPollInterval:  2 * time.Second,
		OutboxBatchSize:     50,
		OutboxMaxAttempts:   5,
		OutboxRetryDelay:    200 * time.Millisecond,
	}
}

// LoadConfigFromEnv накладывает переменные окружения SHOPEASE_* на дефолты.
// Непустой SHOPEASE_POSTGRES_DSN автоматически переключает драйвер на postgres.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.HTTPAddr, "SHOPEASE_HTTP_ADDR")
	setString(&cfg.MetricsAddr, "SHOPEASE_METRICS_ADDR")
	setString(&cfg.PostgresDSN, "SHOPEASE_POSTGRES_DSN")
	setString(&cfg.RedisAddr, "SHOPEASE_REDIS_ADDR")
	setString(&cfg.RedisPassword, "SHOPEASE_REDIS_PASSWORD")
	setString(&cfg.KafkaBrokers, "SHOPEASE_KAFKA_BROKERS")
	setString(&cfg.KafkaTopic, "SHOPEASE_KAFKA_TOPIC")

	if cfg.PostgresDSN != "" {
		cfg.StorageDriver = StorageDriverPostgres
	}
	if v := os.Getenv("SHOPEASE_STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = StorageDriver(v)
	}
	if v := os.Getenv("SHOPEASE_POSTGRES_AUTO_MIGRATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.PostgresAutoMigrate = b
		}
	}
	if v := os.Getenv("SHOPEASE_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}
	if v := os.Getenv("SHOPEASE_SESSION_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil && ttl > 0 {
			cfg.SessionTTL = ttl
		}
	}
	if v := os.Getenv("SHOPEASE_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	if v := os.Getenv("SHOPEASE_OUTBOX_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.OutboxPollInterval = d
		}
	}
	if v := os.Getenv("SHOPEASE_OUTBOX_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.OutboxBatchSize = n
		}
	}
	if v := os.Getenv("SHOPEASE_OUTBOX_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.OutboxMaxAttempts = n
		}
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
