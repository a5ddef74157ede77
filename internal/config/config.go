package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Addr     string        `env:"SERVER_ADDR" envDefault:"0.0.0.0:8080"`
	LogLevel int           `env:"LOG_LEVEL" envDefault:"0"`
	Database Database      `envPrefix:"POSTGRES_"`
	JWT      JWT           `envPrefix:"JWT_"`
	SMTP     SMTP          `envPrefix:"SMTP_"`
	Accounts Accounts      `envPrefix:"ACCOUNTS_"`
	Sweep    time.Duration `env:"TOKEN_SWEEP_INTERVAL" envDefault:"5m"`
}

// Database contains postgres connection parameters.
type Database struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"recipes"`
	Password string `env:"PASSWORD" envDefault:"recipes"`
	Name     string `env:"DB" envDefault:"recipes"`
}

// DSN builds the lib/pq connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name)
}

// JWT contains access-token signing parameters.
type JWT struct {
	Secret string `env:"SECRET" envDefault:"devsecret"`
}

// SMTP contains outbound mail parameters.
type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"no_reply@example.com"`
}

// Accounts contains registration policy parameters.
type Accounts struct {
	RequireActivation bool   `env:"REQUIRE_ACTIVATION" envDefault:"false"`
	ActivationBaseURL string `env:"ACTIVATION_BASE_URL" envDefault:"http://localhost:8080"`
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
