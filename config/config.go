// Package config defines the application configuration structures.
//
// Warehouse credentials come from the environment (or a .env file in
// development), matching how the hosting platform injects secrets.
// Separated from cmd so that warehouse, cortex and tui can depend on
// config without importing Cobra.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Warehouse holds the credential bundle for an explicit session.
// All fields are required when no ambient session is available.
type Warehouse struct {
	Account   string `env:"SNOWFLAKE_ACCOUNT"`
	User      string `env:"SNOWFLAKE_USER"`
	Password  string `env:"SNOWFLAKE_PASSWORD"`
	Role      string `env:"SNOWFLAKE_ROLE"`
	Warehouse string `env:"SNOWFLAKE_WAREHOUSE"`
	Database  string `env:"SNOWFLAKE_DATABASE"`
	Schema    string `env:"SNOWFLAKE_SCHEMA"`
}

// Chat holds completion-provider selection.
type Chat struct {
	// Provider is "cortex" (warehouse-side completion) or "placeholder"
	// (canned offline responses for development).
	Provider string `env:"AVALANCHE_CHAT_PROVIDER" envDefault:"cortex"`
}

// Config is the top-level application configuration.
type Config struct {
	Warehouse Warehouse
	Chat      Chat
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first if present; it never overrides
// variables already set in the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every credential field required for an explicit
// session is set. Not called when an ambient session is available.
func (w Warehouse) Validate() error {
	checks := []struct{ name, val string }{
		{"SNOWFLAKE_ACCOUNT", w.Account},
		{"SNOWFLAKE_USER", w.User},
		{"SNOWFLAKE_PASSWORD", w.Password},
		{"SNOWFLAKE_ROLE", w.Role},
		{"SNOWFLAKE_WAREHOUSE", w.Warehouse},
		{"SNOWFLAKE_DATABASE", w.Database},
		{"SNOWFLAKE_SCHEMA", w.Schema},
	}
	for _, c := range checks {
		if c.val == "" {
			return fmt.Errorf("missing required setting %s", c.name)
		}
	}
	return nil
}
