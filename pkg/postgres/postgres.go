package postgres

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
)

const defaultUser = "postgres"

// Config is the live store credential pair plus pool settings. The access
// key is injected as the password of the endpoint URL.
type Config struct {
	URL      string `envconfig:"STORE_URL"`
	Key      string `envconfig:"STORE_KEY"`
	MaxConns int    `envconfig:"STORE_MAX_CONNS" default:"10"`
	MaxIdle  int    `envconfig:"STORE_MAX_IDLE" default:"2"`
}

// Configured reports whether both halves of the credential pair are present.
func (c *Config) Configured() bool {
	return c.URL != "" && c.Key != ""
}

// DSN builds the connection string handed to lib/pq.
func (c *Config) DSN() (string, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("parse store url: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("unsupported store url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("store url has no host")
	}

	user := defaultUser
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.Key)
	return u.String(), nil
}

// Open returns a pooled handle. No connection is made until first use.
func (c *Config) Open() (*sql.DB, error) {
	dsn, err := c.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if c.MaxConns > 0 {
		db.SetMaxOpenConns(c.MaxConns)
	}
	if c.MaxIdle > 0 {
		db.SetMaxIdleConns(c.MaxIdle)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
