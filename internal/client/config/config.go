package config

import (
	"fmt"
	"time"
)

// Binding names the gateway implementation the client talks through.
type Binding string

const (
	BindingREST     Binding = "rest"
	BindingPostgres Binding = "postgres"
)

func (b Binding) Valid() bool {
	return b == BindingREST || b == BindingPostgres
}

// Config holds runtime settings for the CivicHub CLI.
//
// Fields:
//   - BackendURL: base URL of the CivicHub REST API (rest binding).
//   - HealthAddr: host:port of the backend gRPC health endpoint.
//   - Binding: rest or postgres.
//   - DatabaseDSN, SigningKey: used by the postgres binding only.
//   - LocalDBPath: SQLite file holding the persisted session.
//   - OnlineCheckInterval, RequestTimeout: time.Duration values.
//   - SendResolvedAt: include resolvedAt in complaint status patches.
type Config struct {
	BackendURL          string
	HealthAddr          string
	Binding             Binding
	DatabaseDSN         string
	SigningKey          string
	LocalDBPath         string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	SendResolvedAt      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8080"
	c.HealthAddr = "127.0.0.1:50051"
	c.Binding = BindingREST
	c.DatabaseDSN = ""
	c.SigningKey = ""
	c.LocalDBPath = "civichub_client.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.SendResolvedAt = false
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	if !c.Binding.Valid() {
		return fmt.Errorf("unknown binding %q (want rest or postgres)", c.Binding)
	}
	if c.Binding == BindingPostgres && c.DatabaseDSN == "" {
		return fmt.Errorf("postgres binding needs a DSN (-d)")
	}
	if c.Binding == BindingPostgres && c.SigningKey == "" {
		return fmt.Errorf("postgres binding needs a signing key (-k)")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
