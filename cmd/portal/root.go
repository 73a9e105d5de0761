package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the portal CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "ONLY. profile portal",
		Long: `The profile portal serves a login form and a profile page backed by a
mocked authentication endpoint. Configuration comes from the environment.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAuthenticateCmd())
	cmd.AddCommand(newTUICmd())

	return cmd
}
