// Package config loads process configuration from the environment and the
// static catalog table from YAML.
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the process-level settings. Values come from the environment,
// optionally preloaded from a .env file.
type Config struct {
	Port           int    `env:"SHOP_PORT,default=3000"`
	LogLevel       string `env:"SHOP_LOG_LEVEL,default=info"`
	CatalogPath    string `env:"SHOP_CATALOG_PATH,default=config/catalog.yaml"`
	WebDir         string `env:"SHOP_WEB_DIR,default=web"`
	EconomyBackend string `env:"ECONOMY_BACKEND,default="`
	RateLimitRPS   int    `env:"SHOP_RATE_LIMIT_RPS,default=50"`
	RateLimitBurst int    `env:"SHOP_RATE_LIMIT_BURST,default=100"`
}

// Load reads .env if present, then decodes the environment.
func Load() (Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("SHOP_PORT out of range: %d", cfg.Port)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
