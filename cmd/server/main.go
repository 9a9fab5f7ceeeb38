package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dgallion1/tendercraft/internal/api"
	"github.com/dgallion1/tendercraft/internal/config"
	"github.com/dgallion1/tendercraft/internal/llm"
	"github.com/dgallion1/tendercraft/internal/projectstore"
	"github.com/dgallion1/tendercraft/internal/tender"
)

func main() {
	// Best effort: a missing .env is fine in production.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		log.Error("llm client init failed", "provider", cfg.LLMProvider, "error", err)
		os.Exit(1)
	}
	projects := projectstore.NewClient(cfg.ProjectstoreURL, cfg.ProjectstoreAPIKey)

	// Initialize tender services.
	catalog := tender.NewCatalog()
	svc := tender.NewService(client, catalog, log, cfg.MaxReviewChars)
	sessions := tender.NewSessionStore(cfg.SessionTTL)
	sessions.StartCleanup(ctx, 5*time.Minute)

	// Initialize HTTP server.
	srv, err := api.NewServer(svc, sessions, projects, client, log, cfg)
	if err != nil {
		log.Error("server init failed", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		client.Close()
		projects.Close()
		cancel()
	}()

	log.Info("starting tendercraft", "port", cfg.Port, "llm", client.Name())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
