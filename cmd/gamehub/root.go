// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the GameHub CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gamehub",
		Short: "GameHub - federated identity and session service",
		Long: `GameHub signs players in with third-party identity providers,
provisions local player identities on first sign-in, and issues
signed session tokens for authenticated requests.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}
