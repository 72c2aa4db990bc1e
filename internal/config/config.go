package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Catering CateringConfig `toml:"catering"`
	Accounts AccountsConfig `toml:"accounts"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	ReferenceUTCOffsetHours int  `toml:"reference_utc_offset_hours"`
	BaseDurationHours       int  `toml:"base_duration_hours"`
	MaxAdditionalHours      int  `toml:"max_additional_hours"`
	MinLeadDays             int  `toml:"min_lead_days"`
	BlockApprovalOnConflict bool `toml:"block_approval_on_conflict"`
	BlockCreationOnConflict bool `toml:"block_creation_on_conflict"`
}

// CateringConfig настройки кейтеринга
type CateringConfig struct {
	DefaultMaxDishes int `toml:"default_max_dishes"`
}

// AccountsConfig настройки клиента AccountService (таймаут в секундах)
type AccountsConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// EventsConfig настройки публикации событий в Kafka
type EventsConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"`
}

// Default конфигурация по умолчанию; значения из файла перекрывают её
func Default() Config {
	return Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "venue_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "venue-booking",
		},
		Booking: BookingConfig{
			ReferenceUTCOffsetHours: 8,
			BaseDurationHours:       4,
			MaxAdditionalHours:      10,
			MinLeadDays:             7,
			BlockApprovalOnConflict: true,
		},
		Catering: CateringConfig{
			DefaultMaxDishes: 3,
		},
		Accounts: AccountsConfig{
			URL:     "http://localhost:8081",
			Timeout: 5,
		},
		Events: EventsConfig{
			Topic:        "venue-booking.events",
			WriteTimeout: 10,
		},
	}
}

// Load читает конфигурацию из TOML файла, затем применяет переменные окружения
// (в том числе из необязательного .env рядом с рабочей директорией)
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers := make([]string, 0)
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Events.Brokers = brokers
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	switch {
	case c.Server.HTTPPort <= 0:
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	case c.Database.Port <= 0:
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	case c.Booking.BaseDurationHours <= 0:
		return fmt.Errorf("%w: booking.base_duration_hours must be positive", ErrInvalidConfig)
	case c.Booking.MaxAdditionalHours < 0:
		return fmt.Errorf("%w: booking.max_additional_hours must not be negative", ErrInvalidConfig)
	case c.Booking.MinLeadDays < 0:
		return fmt.Errorf("%w: booking.min_lead_days must not be negative", ErrInvalidConfig)
	case c.Booking.ReferenceUTCOffsetHours < -12 || c.Booking.ReferenceUTCOffsetHours > 14:
		return fmt.Errorf("%w: booking.reference_utc_offset_hours out of range", ErrInvalidConfig)
	case c.Catering.DefaultMaxDishes < 0:
		return fmt.Errorf("%w: catering.default_max_dishes must not be negative", ErrInvalidConfig)
	case c.Events.Enabled && len(c.Events.Brokers) == 0:
		return fmt.Errorf("%w: events.brokers required when events are enabled", ErrInvalidConfig)
	case c.Events.Enabled && c.Events.Topic == "":
		return fmt.Errorf("%w: events.topic required when events are enabled", ErrInvalidConfig)
	}
	return nil
}
