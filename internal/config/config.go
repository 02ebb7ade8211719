package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	DBDSN         string `envconfig:"DB_DSN" required:"true"`
	Environment   string `envconfig:"ENV" default:"development"`

	// Каталог с PDF расписания и период повторного импорта (0 - только при старте)
	TablesDir      string        `envconfig:"TABLES_DIR" default:"schedule_tables"`
	IngestInterval time.Duration `envconfig:"INGEST_INTERVAL" default:"1h"`

	Timezone       string        `envconfig:"TIMEZONE" default:"Europe/Moscow"`
	ParityInverted bool          `envconfig:"PARITY_INVERTED" default:"false"`
	RateLimit      time.Duration `envconfig:"RATE_LIMIT" default:"500ms"`
	ICSWeeks       int           `envconfig:"ICS_WEEKS" default:"4"`

	// Redis необязателен: без адреса кэш не используется
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	RedisTTL      time.Duration `envconfig:"REDIS_TTL" default:"6h"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию только из переменных окружения
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет значения, которые envconfig не может проверить сам
func (c *Config) Validate() error {
	// required в envconfig пропускает переменные, заданные пустой строкой
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must not be negative")
	}
	if c.IngestInterval < 0 {
		return fmt.Errorf("INGEST_INTERVAL must not be negative")
	}
	if c.ICSWeeks < 1 || c.ICSWeeks > 52 {
		return fmt.Errorf("ICS_WEEKS must be between 1 and 52, got %d", c.ICSWeeks)
	}
	return nil
}

// RedisEnabled - задан ли адрес Redis
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ToolConfig - настройки schedulectl: токен бота утилите не нужен
type ToolConfig struct {
	DBDSN          string `envconfig:"DB_DSN"`
	Environment    string `envconfig:"ENV" default:"development"`
	TablesDir      string `envconfig:"TABLES_DIR" default:"schedule_tables"`
	Timezone       string `envconfig:"TIMEZONE" default:"Europe/Moscow"`
	ParityInverted bool   `envconfig:"PARITY_INVERTED" default:"false"`

	// Тот же Redis, что у бота: записи утилиты должны сбрасывать его кэш
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	RedisTTL      time.Duration `envconfig:"REDIS_TTL" default:"6h"`
}

// RedisEnabled - задан ли адрес Redis
func (c *ToolConfig) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func LoadTool() (*ToolConfig, error) {
	_ = godotenv.Load(".env")

	var cfg ToolConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
