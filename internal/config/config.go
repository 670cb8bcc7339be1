package config

import (
	"fmt"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"

	"gcalmcp/internal/google"
)

// Config is the server configuration, read from the environment. A .env file
// in the working directory is loaded first when present.
type Config struct {
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID,required"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET,required"`
	GoogleRefreshToken string `env:"GOOGLE_REFRESH_TOKEN,required"`

	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":3000"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	// A missing .env file is not an error; the variables may come from the
	// process environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment variables: %w", err)
	}

	// The required tag accepts variables that are set but empty; credentials
	// must be non-empty.
	for _, cred := range []struct{ name, value string }{
		{"GOOGLE_CLIENT_ID", cfg.GoogleClientID},
		{"GOOGLE_CLIENT_SECRET", cfg.GoogleClientSecret},
		{"GOOGLE_REFRESH_TOKEN", cfg.GoogleRefreshToken},
	} {
		if cred.value == "" {
			return nil, fmt.Errorf("environment variable %s is empty", cred.name)
		}
	}
	return cfg, nil
}

// LoadClientOnly reads only the OAuth client pair, for the auth command that
// runs before a refresh token exists.
func LoadClientOnly() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err == nil {
		return cfg, nil
	}

	type clientOnly struct {
		GoogleClientID     string `env:"GOOGLE_CLIENT_ID,required"`
		GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET,required"`
	}
	partial := &clientOnly{}
	if err := env.Parse(partial); err != nil {
		return nil, fmt.Errorf("error parsing environment variables: %w", err)
	}
	return &Config{
		GoogleClientID:     partial.GoogleClientID,
		GoogleClientSecret: partial.GoogleClientSecret,
	}, nil
}

// Credentials bundles the Google OAuth material for the auth layer.
func (c *Config) Credentials() google.Credentials {
	return google.Credentials{
		ClientID:     c.GoogleClientID,
		ClientSecret: c.GoogleClientSecret,
		RefreshToken: c.GoogleRefreshToken,
	}
}
