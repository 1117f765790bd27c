// Command adminctl is the operator CLI of the user administration service.
//
//	# Create the reference roles and the first administrator
//	adminctl seed --email admin@veterinaria.local --password '...' --name 'Administrador'
//
//	# Mint a bearer token for an identity (local identity provider only)
//	adminctl token --user-id 6f1c...
//
// Configuration is read from the same environment variables as the server.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adminctl",
	Short: "Operator tasks for the user administration service",
	Long:  `Seed roles and the first administrator, and mint local access tokens.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
