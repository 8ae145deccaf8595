package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the CollegeCrew CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collegecrew",
		Short: "CollegeCrew - campus marketplace backend",
		Long: `CollegeCrew is the backend for a campus job marketplace where
students register with their school email, post short-term jobs, and
bid on each other's postings.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}
