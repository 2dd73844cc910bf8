package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-provided settings.
type Config struct {
	Port int `env:"PORT" envDefault:"5000"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"portfolio"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Email notifications are enabled only when both EmailUser and
	// EmailPass are set.
	EmailUser string `env:"EMAIL_USER"`
	EmailPass string `env:"EMAIL_PASS"`
	SMTPAddr  string `env:"SMTP_ADDR" envDefault:"smtp.gmail.com:587"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
}

// Load reads .env if present and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return c, nil
}

// DatabaseURL assembles a pgx connection string from the DB_* settings.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

// MailEnabled reports whether both sender credentials are configured.
func (c Config) MailEnabled() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}
