// Package config загрузка конфигурации сервиса из TOML-файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/avelir/salon-appointment-service/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server           ServerConfig      `toml:"server"`
	Database         DatabaseConfig    `toml:"database"`
	Logs             LogsConfig        `toml:"logs"`
	Metrics          MetricsConfig     `toml:"metrics"`
	PaymentGateway   IntegrationConfig `toml:"payment_gateway"`
	InventoryService IntegrationConfig `toml:"inventory_service"`
	Booking          BookingConfig     `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к Postgres
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки внешнего HTTP-сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig бизнес-параметры оформления записи
type BookingConfig struct {
	MaxBookingDays       int    `toml:"max_booking_days"`
	OpenTime             string `toml:"open_time"`  // "09:00"
	CloseTime            string `toml:"close_time"` // "20:00"
	CleanupBufferPercent int    `toml:"cleanup_buffer_percent"`
}

// Load читает и валидирует конфигурацию из TOML-файла
// Отсутствующие booking-параметры заполняются значениями по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.PaymentGateway.URL == "" {
		return fmt.Errorf("config: payment_gateway.url is required")
	}
	if c.InventoryService.URL == "" {
		return fmt.Errorf("config: inventory_service.url is required")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Booking.MaxBookingDays <= 0 {
		c.Booking.MaxBookingDays = domain.DefaultMaxBookingDays
	}
	if c.Booking.OpenTime == "" {
		c.Booking.OpenTime = domain.DefaultOpenTime
	}
	if c.Booking.CloseTime == "" {
		c.Booking.CloseTime = domain.DefaultCloseTime
	}
	if c.Booking.CleanupBufferPercent <= 0 {
		c.Booking.CleanupBufferPercent = domain.CleanupBufferPercent
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
}
