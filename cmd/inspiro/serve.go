package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sergiomago/inspiro/internal/api"
	"github.com/sergiomago/inspiro/internal/config"
	"github.com/sergiomago/inspiro/internal/identity"
	"github.com/sergiomago/inspiro/internal/mailer"
	"github.com/sergiomago/inspiro/internal/provider"
	"github.com/sergiomago/inspiro/internal/quote"
	"github.com/sergiomago/inspiro/internal/store"
	"github.com/sergiomago/inspiro/internal/worker"
)

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 2. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateForServe(); err != nil {
		return err
	}
	slog.Info("configuration loaded")

	// 3. Initialize logger
	setupLogger(cfg.Log)
	slog.Info("logger initialized", "level", cfg.Log.Level)

	// 4. Initialize store (migrations, WAL mode)
	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	slog.Info("store initialized", "path", cfg.Database.Path)

	// 5. Initialize completion provider with bounded retry
	client, err := provider.NewClient(provider.Config{
		APIKey:  cfg.Provider.APIKey,
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.Model,
		Timeout: time.Duration(cfg.Provider.Timeout),
	})
	if err != nil {
		return err
	}
	completer := provider.NewRetrying(client, cfg.Generation.ProviderRetries)
	slog.Info("provider initialized", "model", cfg.Provider.Model)

	// 6. Wire the quote generator
	generator := quote.NewGenerator(completer, db, quote.NewPool(), quote.Options{
		ClassicProbability:        cfg.Generation.ClassicProbability,
		AssumeUnusedOnLedgerError: cfg.Generation.OnLedgerError == config.AssumeUnused,
	})

	// 7. Identity provider and mailer
	verifier := identity.NewHTTPVerifier(identity.Config{
		BaseURL: cfg.Identity.BaseURL,
		APIKey:  cfg.Identity.APIKey,
	})
	sender := mailer.NewResendClient(mailer.Config{
		APIKey: cfg.Mailer.APIKey,
		From:   cfg.Mailer.From,
	})

	// 8. Initialize HTTP router
	handler := api.NewHandler(db, generator, verifier, sender, cfg.Auth.ServiceKey, Version, cfg.Provider.Model)
	router := api.NewRouter(handler)
	slog.Info("router initialized")

	// 9. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	// 10. Start the email scheduler when mail delivery is configured
	var wg sync.WaitGroup
	if err := cfg.ValidateForMail(); err == nil {
		scheduler := worker.NewEmailScheduler(db, generator, verifier, sender,
			time.Duration(cfg.Worker.ScheduleInterval))
		startWorker(ctx, &wg, "email-scheduler", scheduler.Run)
	} else {
		slog.Warn("email scheduler disabled", "reason", err)
	}

	// 11. Start HTTP server in goroutine
	go func() {
		slog.Info("server starting", "address", addr)
		// ErrServerClosed is the expected error when Shutdown() is called gracefully.
		// Any other error indicates an actual server failure that should trigger shutdown.
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			cancel() // Trigger shutdown on server failure
		}
	}()

	// 12. Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	// 13. Graceful shutdown sequence
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	// 13a. Stop HTTP server (drains in-flight requests)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// 13b. Wait for workers to complete
	wg.Wait()

	// 13c. Close store
	if err := db.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func setupLogger(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// startWorker launches a background worker goroutine that respects context cancellation.
// Workers are tracked via WaitGroup for graceful shutdown.
func startWorker(ctx context.Context, wg *sync.WaitGroup, name string, fn func(ctx context.Context)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		slog.Info("worker started", "worker", name)
		fn(ctx)
		slog.Info("worker stopped", "worker", name)
	}()
}
