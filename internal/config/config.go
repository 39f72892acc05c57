package config

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/viper"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	AppPort         string
	LogLevel        string
	ShutdownTimeout time.Duration
	Database        DatabaseConfig
	Mail            MailConfig
	RabbitMQURL     string
}

// DatabaseConfig selects the storage driver and its DSN.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// MailConfig holds SMTP settings. Credentials have no defaults: when any
// required field is missing the mailer stays disabled.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Enabled reports whether every setting needed to send mail is present.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Port > 0 && m.Username != "" && m.Password != "" && m.From != "" && m.To != ""
}

// Load reads configuration from the environment on top of built-in defaults.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads configuration through the given viper instance so callers
// (and tests) can pre-seed values.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "storefront.db")
	v.SetDefault("SMTP_PORT", 587)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Mail: MailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("MAIL_FROM"),
			To:       v.GetString("MAIL_TO"),
		},
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return errors.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
