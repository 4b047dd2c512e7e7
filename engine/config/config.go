package config

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

type (
	// Config conveys the properties of an Engine that one can configure
	// using Options
	Config struct {
		Logger    *slog.Logger
		SessionID uuid.UUID
	}

	// Option applies an option to an engine configuration instance
	Option func(*Config) error
)

// Error messages
var (
	ErrLoggerRequired    = errors.New("a logger is required")
	ErrSessionIDRequired = errors.New("a non-nil session id is required")
)

// Defaults applies the default configuration: the process-wide slog logger
// and a freshly generated session ID
var Defaults Option = func(c *Config) error {
	c.Logger = slog.Default()
	c.SessionID = uuid.New()
	return nil
}

// Logger sets the slog.Logger an Engine reports through
func Logger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return ErrLoggerRequired
		}
		c.Logger = l
		return nil
	}
}

// SessionID overrides the generated identity of an Engine
func SessionID(id uuid.UUID) Option {
	return func(c *Config) error {
		if id == uuid.Nil {
			return ErrSessionIDRequired
		}
		c.SessionID = id
		return nil
	}
}

// Apply builds a Config from the Defaults followed by the provided Options
func Apply(o ...Option) (*Config, error) {
	cfg := &Config{}
	for _, opt := range append([]Option{Defaults}, o...) {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
