package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kiran3035/healthai-assistant/internal/api/handlers"
	"github.com/kiran3035/healthai-assistant/internal/config"
	"github.com/kiran3035/healthai-assistant/internal/database"
	"github.com/kiran3035/healthai-assistant/internal/engine"
	"github.com/kiran3035/healthai-assistant/internal/server"
	"github.com/kiran3035/healthai-assistant/internal/store"
	"github.com/kiran3035/healthai-assistant/internal/telemetry"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the HealthAI Assistant API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	generator, err := newGenerator(cfg)
	if err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	knowledgeStore, err := store.New(pool, generator, store.Config{
		IndexName: cfg.IndexName,
		Dimension: cfg.VectorDimension,
	})
	if err != nil {
		return fmt.Errorf("failed to create knowledge store: %w", err)
	}

	if err := knowledgeStore.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("failed to ensure knowledge index: %w", err)
	}
	log.Printf("knowledge index '%s' ready", knowledgeStore.IndexName())

	eng := engine.New(
		knowledgeStore.Retriever(cfg.RetrievalTopK),
		newGenerationClient(cfg),
		engine.Config{Model: cfg.Model},
	)
	log.Printf("conversation engine ready (model: %s)", eng.Model())

	router := server.NewRouter(server.Handlers{
		Chat:   handlers.NewChatHandler(eng),
		Status: handlers.NewStatusHandler(Version),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
