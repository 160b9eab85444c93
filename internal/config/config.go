package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Upstream UpstreamConfig
	Poll     PollConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" required:"true"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Name     string `envconfig:"DB_NAME" default:"wellenwerk"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type UpstreamConfig struct {
	BaseURL        string        `envconfig:"BOOKING_API_URL" default:"https://api.bookinglayer.io"`
	Calendar       string        `envconfig:"BOOKING_CALENDAR" default:"surf-calendar"`
	BusinessDomain string        `envconfig:"BOOKING_BUSINESS_DOMAIN" default:"bookings.wellenwerk-berlin.de"`
	Currency       string        `envconfig:"BOOKING_CURRENCY" default:"EUR"`
	Timeout        time.Duration `envconfig:"BOOKING_TIMEOUT" default:"20s"`
}

// PollConfig controls the in-process scheduler. An interval of 0 disables it,
// leaving reconciliation to external triggers on /reconcile.
type PollConfig struct {
	Interval time.Duration `envconfig:"POLL_INTERVAL" default:"0"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}
