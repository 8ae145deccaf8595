// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package store

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMigrate implements migrateIface for unit tests.
type fakeMigrate struct {
	upErr      error
	downErr    error
	version    uint
	dirty      bool
	versionErr error
	srcErr     error
	dbErr      error
}

func (f *fakeMigrate) Up() error                          { return f.upErr }
func (f *fakeMigrate) Down() error                        { return f.downErr }
func (f *fakeMigrate) Version() (uint, bool, error)       { return f.version, f.dirty, f.versionErr }
func (f *fakeMigrate) Close() (source, database error)    { return f.srcErr, f.dbErr }

func TestMigratorUp(t *testing.T) {
	t.Run("succeeds", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{}}
		assert.NoError(t, m.Up())
	})

	t.Run("no change is not an error", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{upErr: migrate.ErrNoChange}}
		assert.NoError(t, m.Up())
	})

	t.Run("wraps failure", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{upErr: errors.New("boom")}}
		err := m.Up()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestMigratorDown(t *testing.T) {
	t.Run("no change is not an error", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{downErr: migrate.ErrNoChange}}
		assert.NoError(t, m.Down())
	})

	t.Run("wraps failure", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{downErr: errors.New("boom")}}
		assert.Error(t, m.Down())
	})
}

func TestMigratorVersion(t *testing.T) {
	t.Run("returns current version", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{version: 2, dirty: false}}
		version, dirty, err := m.Version()
		require.NoError(t, err)
		assert.Equal(t, uint(2), version)
		assert.False(t, dirty)
	})

	t.Run("nil version reports zero", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{versionErr: migrate.ErrNilVersion}}
		version, dirty, err := m.Version()
		require.NoError(t, err)
		assert.Equal(t, uint(0), version)
		assert.False(t, dirty)
	})

	t.Run("wraps failure", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{versionErr: errors.New("boom")}}
		_, _, err := m.Version()
		assert.Error(t, err)
	})
}

func TestMigratorClose(t *testing.T) {
	t.Run("clean close", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{}}
		assert.NoError(t, m.Close())
	})

	t.Run("source error surfaces", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{srcErr: errors.New("src")}}
		assert.Error(t, m.Close())
	})

	t.Run("both errors surface combined", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{srcErr: errors.New("src"), dbErr: errors.New("db")}}
		err := m.Close()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "src")
		assert.Contains(t, err.Error(), "db")
	})
}
