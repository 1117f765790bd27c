package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/config"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/dto"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/infra"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/model"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/repository"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/router"
	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the reference roles and the first administrator",
	Long: `Run the schema migrations (which insert the admin, veterinario and
cliente roles) and create an administrator through the regular add workflow.

Running it again with an existing email only re-applies the migrations.

Example:
  adminctl seed --email admin@veterinaria.local --password secreto123 --name Administrador`,
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		phone, _ := cmd.Flags().GetString("phone")

		msg, err := seed(email, password, name, phone)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(msg)
	},
}

func init() {
	seedCmd.Flags().String("email", "", "Administrator email (required)")
	seedCmd.Flags().String("password", "", "Administrator password (required)")
	seedCmd.Flags().String("name", "Administrador", "Administrator display name")
	seedCmd.Flags().String("phone", "", "Administrator phone")
	_ = seedCmd.MarkFlagRequired("email")
	_ = seedCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(seedCmd)
}

func seed(email, password, name, phone string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("connect to postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rol, err := repository.NewRolRepository(db).FindByNombre(ctx, model.RolAdmin)
	if err != nil {
		return "", fmt.Errorf("resolve admin role: %w", err)
	}

	// No redis: no role cache and no welcome email for the seed admin.
	svcs := router.NewServices(cfg, db, nil)
	resp, err := svcs.Admin.CrearUsuario(ctx, service.AdminContext{AdminID: uuid.Nil}, &dto.DatosUsuario{
		Email:    email,
		Password: password,
		Name:     name,
		Phone:    phone,
		RoleID:   &rol.ID,
	}, nil)
	if err != nil {
		if service.KindOf(err) == service.KindIdentityCreation && service.MessageOf(err) == "El email ya esta registrado" {
			return fmt.Sprintf("Roles up to date; %s already exists", email), nil
		}
		return "", err
	}
	return fmt.Sprintf("Administrator %s created with id %s", email, resp.UserID), nil
}
