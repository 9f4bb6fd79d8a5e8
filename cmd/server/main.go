package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/git-scope/git-scope/internal/api"
	"github.com/git-scope/git-scope/internal/config"
	"github.com/git-scope/git-scope/internal/db"
	"github.com/git-scope/git-scope/internal/github"
	"github.com/git-scope/git-scope/internal/llm"
	"github.com/git-scope/git-scope/internal/narrate"
	"github.com/git-scope/git-scope/internal/notes"

	_ "github.com/git-scope/git-scope/docs"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logger.SetOutput(os.Stdout)

	// Load configuration with defaults
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Select the notes storage port: Postgres when a connection string is
	// configured, a local JSON file otherwise.
	var storage notes.StoragePort
	if cfg.DBConnectionString != "" {
		pgStore, err := db.NewPostgresStore(cfg.DBConnectionString)
		if err != nil {
			logger.Fatalf("Failed to initialize database: %v", err)
		}
		if err := retry(3, 5*time.Second, func() error {
			return pgStore.Migrate()
		}); err != nil {
			logger.Fatalf("Failed to run migrations after retries: %v", err)
		}
		storage = pgStore
		logger.Info("Using Postgres-backed notes storage")
	} else {
		storage = notes.NewFileStorage(cfg.NotesFile)
		logger.Infof("Using file-backed notes storage at %s", cfg.NotesFile)
	}

	// Initialize services
	githubClient := github.NewClient(cfg.GitHub.Token, logger,
		github.WithBaseURL(cfg.GitHub.APIBaseURL),
		github.WithPageSizes(cfg.GitHub.ReposPerPage, cfg.GitHub.EventsPerPage),
	)

	var completer narrate.Completer
	if cfg.OpenAI.APIKey != "" {
		completer = llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger,
			llm.WithBaseURL(cfg.OpenAI.BaseURL),
		)
	} else {
		logger.Warn("No OPENAI_API_KEY configured, narrations use the fallback generator")
	}
	narrator := narrate.NewService(completer, cfg.ActivityWindowDays, logger)

	noteStore := notes.NewStore(storage, logger)
	handler := api.NewHandler(githubClient, narrator, noteStore, cfg.ActivityWindowDays, logger)

	// Setup router with middleware
	router := api.SetupRouter(handler)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(router)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server exited properly")
}

// retry retries a function up to a certain number of attempts with a delay between attempts
func retry(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return retry(attempts, sleep, fn)
		}
		return err
	}
	return nil
}
