package database

import (
	"errors"
	"flag"
	"time"
)

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleTime  = 15 * time.Minute
)

type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

// RegisterFlags binds the PostgreSQL settings to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DSN, "db-dsn", "", "PostgreSQL DSN")
	fs.IntVar(&c.MaxOpenConns, "db-max-open-conns", defaultMaxOpenConns, "PostgreSQL max open connections")
	fs.DurationVar(&c.MaxIdleTime, "db-max-idle-time", defaultMaxIdleTime, "PostgreSQL max idle time for connections")
}

func (c Config) Validate() error {
	var errs []error

	if c.DSN == "" {
		errs = append(errs, errors.New("db-dsn must be provided"))
	}
	if c.MaxOpenConns <= 0 {
		errs = append(errs, errors.New("db-max-open-conns must be positive"))
	}
	if c.MaxIdleTime < 0 {
		errs = append(errs, errors.New("db-max-idle-time must not be negative"))
	}

	return errors.Join(errs...)
}
