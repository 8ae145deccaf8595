// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

// Package config loads and validates process configuration.
//
// Precedence, lowest to highest: built-in defaults, YAML config file,
// command-line flags. The signing secret and token lifetime have no
// defaults: startup fails fast when they are missing rather than
// falling back to an insecure value.
package config

import (
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/collegecrew/collegecrew/internal/auth"
)

// Defaults for optional settings.
const (
	DefaultHTTPAddr    = ":8080"
	DefaultMetricsAddr = "127.0.0.1:9100"
	DefaultLogFormat   = "json"
)

// Config is the immutable process configuration, constructed once at
// startup.
type Config struct {
	DatabaseURL   string
	HTTPAddr      string
	MetricsAddr   string
	LogFormat     string
	TokenSecret   []byte
	TokenLifetime time.Duration
}

// Load reads configuration from an optional YAML file and flag
// overrides, then validates it. path may be empty when no config file
// is used; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if flags != nil {
		// posflag only merges unchanged flag defaults for keys the
		// file didn't already set.
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").
				With("operation", "merge flags").
				Wrap(err)
		}
	}

	cfg := &Config{
		DatabaseURL:   k.String("database.url"),
		HTTPAddr:      k.String("http.addr"),
		MetricsAddr:   k.String("metrics.addr"),
		LogFormat:     k.String("log.format"),
		TokenSecret:   []byte(k.String("token.secret")),
		TokenLifetime: time.Duration(k.Int64("token.lifetime_ms")) * time.Millisecond,
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = DefaultMetricsAddr
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabaseURL reads only database.url from a YAML config file.
// Used by commands that touch the database but don't need the full
// serving configuration.
func LoadDatabaseURL(path string) (string, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return "", oops.Code("CONFIG_LOAD_FAILED").
			With("path", path).
			Wrap(err)
	}
	url := k.String("database.url")
	if url == "" {
		return "", oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}
	return url, nil
}

// Validate checks that the configuration is complete and safe.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}
	if len(c.TokenSecret) == 0 {
		return oops.Code("CONFIG_INVALID").Errorf("token.secret is required")
	}
	if len(c.TokenSecret) < auth.MinTokenSecretLen {
		return oops.Code("CONFIG_INVALID").
			With("min_bytes", auth.MinTokenSecretLen).
			Errorf("token.secret must be at least %d bytes", auth.MinTokenSecretLen)
	}
	if c.TokenLifetime <= 0 {
		return oops.Code("CONFIG_INVALID").Errorf("token.lifetime_ms must be positive")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").
			With("log_format", c.LogFormat).
			Errorf("log.format must be 'json' or 'text'")
	}
	return nil
}
