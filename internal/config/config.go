// Package config loads the client configuration file.
//
// The relay list lives here and only here: the core packages never hold a
// default relay, so an operator always knows exactly which sources a
// computation drew evidence from.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultQueryTimeoutMS bounds each fan-out query when the file does not
// say otherwise.
const DefaultQueryTimeoutMS = 3000

// Config models surety.yml.
type Config struct {
	// Relays are the websocket URLs the transport layer connects to.
	Relays []string `yaml:"relays"`
	// QueryTimeoutMS bounds each individual relay query.
	QueryTimeoutMS int `yaml:"query_timeout_ms"`
	// Database is the path of the local event cache.
	Database string `yaml:"database"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return FromYAML(data)
}

// FromYAML decodes and validates config bytes. Unknown fields are
// rejected so typos surface instead of silently doing nothing.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.QueryTimeoutMS <= 0 {
		cfg.QueryTimeoutMS = DefaultQueryTimeoutMS
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("config: database path is required")
	}
	return &cfg, nil
}

// QueryTimeout returns the per-query budget as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMS) * time.Millisecond
}
