package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config параметры сервиса из окружения (.env для локального запуска)
type Config struct {
	Environment string        `envconfig:"ENVIRONMENT" default:"development"`
	HTTPAddr    string        `envconfig:"HTTP_ADDR" default:":9091"`
	DatabaseURL string        `envconfig:"DATABASE_URL"`
	RedisAddr   string        `envconfig:"REDIS_ADDR"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"45s"`
}

// IsProduction окружение боевое
func (c *Config) IsProduction() bool { return c.Environment == "production" }

// Load читает .env (если есть) и собирает конфигурацию из переменных окружения
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
