package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lawFirmWebsite/internal/config"
	"lawFirmWebsite/internal/database"
	"lawFirmWebsite/internal/database/migrations"
	"lawFirmWebsite/internal/handlers"
	"lawFirmWebsite/internal/logging"
	"lawFirmWebsite/internal/uploads"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Run the public website, the admin REST API and the admin login.

Pending migrations are applied on start. Configuration comes from the environment
(and .env when present); see .env.example.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	logger, closer, err := logging.NewForEnvironment(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.OpenConnection(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.MigrateUp(db); err != nil {
		return err
	}

	uploadStore, err := uploads.NewStore(ctx, cfg.Upload)
	if err != nil {
		return fmt.Errorf("failed to set up uploads: %w", err)
	}

	srv := handlers.NewServer(cfg, logger, database.NewStore(db, nil, nil), uploadStore)
	srv.StartBackground(ctx)

	if !cfg.OAuthEnabled() {
		logger.Warn("Google OAuth is not configured; admin login is disabled")
	}
	if cfg.AdminAPIToken == "" {
		logger.Warn("ADMIN_API_TOKEN is not set; the admin console cannot connect")
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	logger.WithFields(map[string]any{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"uploads":     cfg.Upload.Backend,
	}).Info("Server starting")

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
