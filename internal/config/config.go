// Package config loads client configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	ServerURL string
	Username  string
}

// Load reads configuration from environment variables, falling back to
// defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		ServerURL: getEnv("CHAT_WS_URL", "ws://localhost:8080"),
		Username:  os.Getenv("CHAT_USERNAME"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !strings.HasPrefix(c.ServerURL, "ws://") && !strings.HasPrefix(c.ServerURL, "wss://") {
		return fmt.Errorf("CHAT_WS_URL must be a ws:// or wss:// URL, got %q", c.ServerURL)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
