// Package config handles configuration for the server component:
// defaults, an optional .env overlay, environment variables, and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the auth server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - MongoURI: MongoDB connection string.
//   - DatabaseName: database holding the users and session collections.
//   - Pepper: secret mixed into every password before key derivation.
//   - SigningSecret: HMAC key for signing tokens (HS256).
//   - TokenIssuer: issuer claim written into every token.
//   - SessionLifetime: how long a session stays valid after login.
type Config struct {
	EndpointAddr    string
	MongoURI        string
	DatabaseName    string
	Pepper          string
	SigningSecret   string
	TokenIssuer     string
	SessionLifetime time.Duration
}

// LoadDefaults populates Config with development defaults. The two secrets
// have no default at all: they must come from the environment or flags.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.MongoURI = "mongodb://localhost:27017"
	c.DatabaseName = "Dragon"
	c.TokenIssuer = "dragon-medical"
	c.SessionLifetime = 1 * time.Hour
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional .env file, the environment, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

var (
	ErrPepperRequired        = errors.New("config: pepper is required (DRAGON_PEPPER)")
	ErrSigningSecretRequired = errors.New("config: signing secret is required (DRAGON_SIGNING_SECRET)")
)

// Validate reports whether the configuration is complete enough to start.
// Missing secrets are a startup error, never silently defaulted.
func (c *Config) Validate() error {
	if c.Pepper == "" {
		return ErrPepperRequired
	}
	if c.SigningSecret == "" {
		return ErrSigningSecretRequired
	}
	return nil
}
