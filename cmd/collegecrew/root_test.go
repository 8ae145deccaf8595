// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	t.Run("has expected subcommands", func(t *testing.T) {
		names := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		assert.Contains(t, names, "serve")
		assert.Contains(t, names, "migrate")
	})

	t.Run("has config flag", func(t *testing.T) {
		assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	})
}

func TestMigrateCmdRequiresDatabaseURL(t *testing.T) {
	configFile = ""
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"migrate"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url is required")
}

func TestServeCmdRejectsIncompleteConfig(t *testing.T) {
	configFile = ""
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"serve"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	// No database URL or token secret configured.
	assert.Error(t, cmd.Execute())
}
