// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/collegecrew/collegecrew/internal/config"
	"github.com/collegecrew/collegecrew/internal/store"
)

// newMigrateCmd creates the migrate subcommand.
func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending database migrations against the PostgreSQL database.`,
		RunE:  runMigrate,
	}
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	databaseURL, err := cmd.Flags().GetString("database.url")
	if err != nil {
		return oops.Wrap(err)
	}
	if databaseURL == "" && configFile != "" {
		// Serve-only settings may be absent from the file, so only the
		// URL is read here.
		databaseURL, err = config.LoadDatabaseURL(configFile)
		if err != nil {
			return err
		}
	}
	if databaseURL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}

	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			cmd.PrintErrln("warning: failed to close migrator:", closeErr)
		}
	}()

	cmd.Println("Running migrations...")
	if err := migrator.Up(); err != nil {
		return err
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	cmd.Printf("Migrations completed successfully (version %d, dirty=%v)\n", version, dirty)
	return nil
}
