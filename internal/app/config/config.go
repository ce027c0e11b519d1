package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — конфигурация всего сервиса. Значения читаются из config.yaml,
// переменные окружения имеют приоритет над файлом (cleanenv).
type Config struct {
	ServiceHost string `yaml:"service_host" env:"SERVICE_HOST" env-default:"0.0.0.0"`
	ServicePort int    `yaml:"service_port" env:"SERVICE_PORT" env-default:"8080"`

	// DSN основной базы (PostgreSQL, каталог звёзд + история карт)
	DSN string `yaml:"dsn" env:"DSN" env-default:"host=127.0.0.1 port=5432 user=alex password=password123 dbname=starscope sslmode=disable"`

	Redis    RedisConfig    `yaml:"redis"`
	Minio    MinioConfig    `yaml:"minio"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Chart    ChartConfig    `yaml:"chart"`
}

// RedisConfig — кэш геокодера и сессии пользователей.
type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"24h"`
}

// MinioConfig — хранилище готовых PNG со звёздными картами.
type MinioConfig struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY" env-default:"minio"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY" env-default:"minio124"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"charts"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
}

// GeocoderConfig — внешний сервис геокодирования (Nominatim).
type GeocoderConfig struct {
	BaseURL   string        `yaml:"base_url" env:"GEOCODER_BASE_URL" env-default:"https://nominatim.openstreetmap.org"`
	UserAgent string        `yaml:"user_agent" env:"GEOCODER_USER_AGENT" env-default:"star_chart_app"`
	Timeout   time.Duration `yaml:"timeout" env:"GEOCODER_TIMEOUT" env-default:"10s"`
}

// ChartConfig — параметры отрисовки карты (размеры из оригинального StarScope).
type ChartConfig struct {
	SizePx            int     `yaml:"size_px" env:"CHART_SIZE_PX" env-default:"800"`
	MaxStarSize       float64 `yaml:"max_star_size" env:"CHART_MAX_STAR_SIZE" env-default:"80"`
	LimitingMagnitude float64 `yaml:"limiting_magnitude" env:"CHART_LIMITING_MAGNITUDE" env-default:"6"`
}

// NewConfig читает конфигурацию. Путь к файлу можно переопределить через
// CONFIG_PATH; если файла нет — работаем на env + значениях по умолчанию.
func NewConfig() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("чтение %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("чтение переменных окружения: %w", err)
	}
	return &cfg, nil
}
