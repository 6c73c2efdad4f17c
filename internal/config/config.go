package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Auth         AuthConfig         `toml:"auth"`
	Retention    RetentionConfig    `toml:"retention"`
	Conversation ConversationConfig `toml:"conversation"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки проверки токенов персонала
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// RetentionConfig настройки хранения истории
type RetentionConfig struct {
	// MinPurgeAgeDays минимально допустимый возраст для purge,
	// защита от случайного удаления свежих данных
	MinPurgeAgeDays int `toml:"min_purge_age_days"`
}

// ConversationConfig настройки состояний диалогов чат-бота
type ConversationConfig struct {
	// TTLMinutes время жизни состояния диалога без активности
	TTLMinutes int `toml:"ttl_minutes"`

	// SweepIntervalMinutes период фоновой уборки истёкших состояний
	SweepIntervalMinutes int `toml:"sweep_interval_minutes"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Retention.MinPurgeAgeDays == 0 {
		cfg.Retention.MinPurgeAgeDays = 30
	}
	if cfg.Conversation.TTLMinutes == 0 {
		cfg.Conversation.TTLMinutes = 30
	}
	if cfg.Conversation.SweepIntervalMinutes == 0 {
		cfg.Conversation.SweepIntervalMinutes = 10
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: auth.jwt_secret is required")
	}

	return &cfg, nil
}
