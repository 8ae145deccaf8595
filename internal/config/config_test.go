// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegecrew/collegecrew/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validYAML = `
database:
  url: postgres://localhost:5432/collegecrew
token:
  secret: 0123456789abcdef0123456789abcdef
  lifetime_ms: 3600000
`

func TestLoad(t *testing.T) {
	t.Run("loads complete config from file", func(t *testing.T) {
		path := writeConfigFile(t, validYAML)

		cfg, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost:5432/collegecrew", cfg.DatabaseURL)
		assert.Equal(t, []byte("0123456789abcdef0123456789abcdef"), cfg.TokenSecret)
		assert.Equal(t, time.Hour, cfg.TokenLifetime)
	})

	t.Run("applies defaults for optional settings", func(t *testing.T) {
		path := writeConfigFile(t, validYAML)

		cfg, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultHTTPAddr, cfg.HTTPAddr)
		assert.Equal(t, config.DefaultMetricsAddr, cfg.MetricsAddr)
		assert.Equal(t, config.DefaultLogFormat, cfg.LogFormat)
	})

	t.Run("flags override file values", func(t *testing.T) {
		path := writeConfigFile(t, validYAML+"\nhttp:\n  addr: \":8080\"\n")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("http.addr", config.DefaultHTTPAddr, "")
		require.NoError(t, flags.Set("http.addr", ":9999"))

		cfg, err := config.Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.HTTPAddr)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := config.Load("/nonexistent/config.yaml", nil)
		assert.Error(t, err)
	})

	t.Run("missing database url fails", func(t *testing.T) {
		path := writeConfigFile(t, `
token:
  secret: 0123456789abcdef0123456789abcdef
  lifetime_ms: 3600000
`)
		_, err := config.Load(path, nil)
		assert.Error(t, err)
	})

	t.Run("short token secret fails", func(t *testing.T) {
		path := writeConfigFile(t, `
database:
  url: postgres://localhost/db
token:
  secret: tooshort
  lifetime_ms: 3600000
`)
		_, err := config.Load(path, nil)
		assert.Error(t, err)
	})

	t.Run("missing token lifetime fails", func(t *testing.T) {
		path := writeConfigFile(t, `
database:
  url: postgres://localhost/db
token:
  secret: 0123456789abcdef0123456789abcdef
`)
		_, err := config.Load(path, nil)
		assert.Error(t, err)
	})

	t.Run("bad log format fails", func(t *testing.T) {
		path := writeConfigFile(t, validYAML+"\nlog:\n  format: xml\n")
		_, err := config.Load(path, nil)
		assert.Error(t, err)
	})
}

func TestLoadDatabaseURL(t *testing.T) {
	t.Run("reads url without requiring serving settings", func(t *testing.T) {
		path := writeConfigFile(t, "database:\n  url: postgres://localhost/db\n")

		url, err := config.LoadDatabaseURL(path)
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/db", url)
	})

	t.Run("missing url fails", func(t *testing.T) {
		path := writeConfigFile(t, "http:\n  addr: \":8080\"\n")
		_, err := config.LoadDatabaseURL(path)
		assert.Error(t, err)
	})
}
