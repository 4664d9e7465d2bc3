// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	Identity                `yaml:"identity"`
	RabbitMQ                `yaml:"rabbitmq"`
	RateLimit               `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis, в нём кешируются роли
type RedisConnection struct {
	Enabled      bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	AddressRedis string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeout" env-default:"2s"`
	RoleTTL      time.Duration `yaml:"role_ttl" env-default:"1m"`
}

// Identity настройки внешнего провайдера идентификации
type Identity struct {
	BaseURL       string        `yaml:"base_url" env:"IDENTITY_BASE_URL" env-required:"true"`
	SecretKey     string        `yaml:"secret_key" env:"IDENTITY_SECRET_KEY" env-required:"true"`
	SessionSecret string        `yaml:"session_secret" env:"IDENTITY_SESSION_SECRET" env-required:"true"`
	Issuer        string        `yaml:"issuer" env:"IDENTITY_ISSUER"`
	WebhookSecret string        `yaml:"webhook_secret" env:"IDENTITY_WEBHOOK_SECRET" env-required:"true"`
	Timeout       time.Duration `yaml:"timeout" env-default:"5s"`
}

// RabbitMQ настройки публикации событий подписки
type RabbitMQ struct {
	Enabled  bool   `yaml:"enabled" env:"RABBITMQ_ENABLED" env-default:"false"`
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env-default:"todo.events"`
}

// RateLimit настройки ограничителя запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"20"`
	Burst int     `yaml:"burst" env-default:"40"`
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, при ошибке завершает процесс
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Load читает конфиг из файла, переменные окружения переопределяют значения из файла
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file: %s - does not exist", op, configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config: %w", op, err)
	}
	if cfg.RedisConnection.Enabled && cfg.AddressRedis == "" {
		return nil, fmt.Errorf("%s: redis_connection.address is required when redis is enabled", op)
	}
	if cfg.RabbitMQ.Enabled && cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("%s: rabbitmq.url is required when rabbitmq is enabled", op)
	}
	return &cfg, nil
}

// String печатает конфиг без секретов
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Redis:\n"+
			"  Enabled: %t\n"+
			"  Addr: %s\n"+
			"  RoleTTL: %s\n"+
			"Identity:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.RedisConnection.Enabled,
		c.AddressRedis,
		c.RoleTTL,
		c.BaseURL,
		c.Identity.Timeout,
		c.RabbitMQ.Enabled,
		c.Exchange,
	)
}
