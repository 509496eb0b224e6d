package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"quotewizard/internal/config"
	"quotewizard/internal/database"
	"quotewizard/internal/domain/lead"
	"quotewizard/internal/domain/notification"
	"quotewizard/internal/domain/quote"
	"quotewizard/internal/domain/wizard"
	"quotewizard/internal/tui"
)

var (
	databaseURL string
	logFile     string
)

var rootCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Fill in a quote request from the terminal",
	Long: `Runs the quote wizard in the terminal. The finished request is stored in
the same database as the API and the sales team is notified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&databaseURL, "db", "", "Database URL or sqlite path (default: DATABASE_URL)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of discarding them")
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	// the terminal belongs to the UI; logs only go to a file when asked
	log.SetOutput(io.Discard)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	repo := lead.NewRepository(db)
	notifier := notification.NewEmailNotifier(repo, notification.NewRenderer(),
		notification.NewDevConsoleMailer(cfg.DevMailer), cfg.MailFrom, cfg.NotifyRecipients)
	ctrl := wizard.New(quote.DefaultRegistry(), lead.NewService(repo, notifier, nil))

	model := tui.New(ctx, ctrl)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return err
	}

	if sub := model.Result(); sub != nil {
		fmt.Printf("Pedido %s salvo.\n", sub.Lead.ID)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
