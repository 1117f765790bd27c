package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/config"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/infra"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for an identity",
	Long: `Sign an access token for an existing identity of the local identity
provider. The token expires after JWT_EXPIRATION_HOURS.

Example:
  adminctl token --user-id 6f1c2a9e-0000-4000-8000-000000000000`,
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user-id")

		token, err := mintToken(userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to mint token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
	},
}

func init() {
	tokenCmd.Flags().String("user-id", "", "Identity id (required)")
	_ = tokenCmd.MarkFlagRequired("user-id")
	rootCmd.AddCommand(tokenCmd)
}

func mintToken(userID string) (string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", fmt.Errorf("invalid user id: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.IdentityBackend != config.IdentityBackendLocal {
		return "", errors.New("tokens can only be minted with IDENTITY_BACKEND=local")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("connect to postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	identidades := repository.NewIdentidadRepository(db, cfg.JWTSecret, time.Duration(cfg.JWTExpirationHours)*time.Hour)
	ident, err := identidades.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("find identity: %w", err)
	}
	return identidades.IssueToken(ident.ID, ident.Email)
}
