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
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	GRPCHealthAddress       string `yaml:"grpc_health_address"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Session                 `yaml:"session"`
	Identity                `yaml:"identity"`
	RabbitMQ                `yaml:"rabbitmq"`
	LoginRateLimit          `yaml:"login_rate_limit"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// Session структура для настройки пользовательских сессий
type Session struct {
	CookieName   string        `yaml:"cookie_name" env-default:"sessionid"`
	SecretKey    string        `yaml:"secret_key" env:"SESSION_SECRET"`
	TTL          time.Duration `yaml:"ttl" env-default:"336h"`
	CookieSecure bool          `yaml:"cookie_secure"`
}

// Identity структура для настройки провайдера учётных записей.
//
// Provider принимает значения "firebase" (Identity Toolkit REST API) или "local"
// (учётные данные в PostgreSQL).
type Identity struct {
	Provider       string        `yaml:"provider" env-default:"firebase"`
	FirebaseAPIKey string        `yaml:"firebase_api_key" env:"FIREBASE_WEB_API_KEY"`
	FirebaseURL    string        `yaml:"firebase_url" env-default:"https://identitytoolkit.googleapis.com/v1"`
	Timeout        time.Duration `yaml:"timeout" env-default:"10s"`
	MaxFailures    int           `yaml:"max_failures" env-default:"5"`
	FailureWindow  time.Duration `yaml:"failure_window" env-default:"5m"`
}

// RabbitMQ структура для настройки публикации аудита. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"eventos.audit"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// LoginRateLimit структура для ограничения частоты попыток входа
type LoginRateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"5"`
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке
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

// Load читает конфиг из файла и переменных окружения.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("session secret_key is not set")
	}
	switch cfg.Provider {
	case "firebase", "local":
	default:
		return nil, fmt.Errorf("unknown identity provider: %q", cfg.Provider)
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  CookieName: %s\n"+
			"  TTL: %s\n"+
			"Identity:\n"+
			"  Provider: %s\n",
		c.Env,
		c.StorageConnectionString,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.CookieName,
		c.TTL,
		c.Provider,
	)
}
