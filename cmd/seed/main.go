package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"quotewizard/internal/config"
	"quotewizard/internal/database"
	"quotewizard/internal/domain/admin"
)

var (
	username string
	password string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate the database and create or reset an admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&username, "username", "u", "", "Admin username")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "Admin password")
	rootCmd.MarkFlagRequired("username")
	rootCmd.MarkFlagRequired("password")
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	svc := admin.NewService(admin.NewRepository(db), nil, nil)
	user, created, err := svc.Upsert(ctx, username, password)
	if err != nil {
		return err
	}

	if created {
		log.Printf("admin created username=%s id=%s", user.Username, user.ID)
	} else {
		log.Printf("admin password reset username=%s id=%s", user.Username, user.ID)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
