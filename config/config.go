package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все настройки приложения
type Config struct {
	Port   string
	AppEnv string

	DBDriver  string
	DSN       string
	DBTimeout time.Duration

	XMLMaxBytes int64

	RedisAddr     string
	BatchLogLimit int64

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// IsProd сообщает, запущено ли приложение в боевом режиме.
func (c *Config) IsProd() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

// Load читает .env (если есть) и возвращает заполненный Config
func Load() (*Config, error) {
	// Попробуем загрузить файл .env — если его нет, просто пропускаем
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "3000"),
		AppEnv:         getenv("APP_ENV", "dev"),
		DBDriver:       getenv("DB_DRIVER", "sqlite"),
		DSN:            getenv("DB_DSN", "countydb.db"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getenv("MINIO_BUCKET", "ingest"),
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}

	timeout, err := time.ParseDuration(getenv("DB_TIMEOUT", "5s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("DB_TIMEOUT must be a positive duration")
	}
	cfg.DBTimeout = timeout

	maxBytes, err := strconv.ParseInt(getenv("XML_MAX_BYTES", "10485760"), 10, 64)
	if err != nil || maxBytes <= 0 {
		return nil, fmt.Errorf("XML_MAX_BYTES must be a positive integer")
	}
	cfg.XMLMaxBytes = maxBytes

	limit, err := strconv.ParseInt(getenv("BATCH_LOG_LIMIT", "50"), 10, 64)
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("BATCH_LOG_LIMIT must be a positive integer")
	}
	cfg.BatchLogLimit = limit

	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("MINIO_USE_SSL must be a boolean: %w", err)
		}
		cfg.MinioUseSSL = useSSL
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
