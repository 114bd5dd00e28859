package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/realahmed45/future-bali-frontend/internal/api"
	"github.com/realahmed45/future-bali-frontend/internal/backend"
	"github.com/realahmed45/future-bali-frontend/internal/config"
	"github.com/realahmed45/future-bali-frontend/internal/emailjs"
	"github.com/realahmed45/future-bali-frontend/internal/lifecycle"
	"github.com/realahmed45/future-bali-frontend/internal/nav"
	"github.com/realahmed45/future-bali-frontend/internal/notify"
	"github.com/realahmed45/future-bali-frontend/internal/repository"
	"github.com/realahmed45/future-bali-frontend/internal/repository/memory"
	"github.com/realahmed45/future-bali-frontend/internal/repository/postgres"
	"github.com/realahmed45/future-bali-frontend/internal/service"
	"github.com/realahmed45/future-bali-frontend/internal/session"
	"github.com/realahmed45/future-bali-frontend/internal/storage"
	"github.com/realahmed45/future-bali-frontend/internal/telemetry"
	"github.com/realahmed45/future-bali-frontend/migrations"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting booking server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "future-bali-frontend", cfg.OTelEndpoint)
	if err != nil {
		logger.Fatal("Failed to set up tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", zap.Error(err))
		}
	}()

	// Local storage and session
	store, err := storage.Open(cfg.Storage.Path, logger)
	if err != nil {
		logger.Fatal("Failed to open local storage", zap.Error(err))
	}
	defer store.Close()

	sess, err := session.New(store, logger)
	if err != nil {
		logger.Fatal("Failed to restore session", zap.Error(err))
	}
	sess.Subscribe(func(e session.Event) {
		logger.Info("Session changed", zap.String("kind", string(e.Kind)))
	})

	// Checkpoint store
	repos, closeRepos := openRepositories(ctx, cfg, logger)
	defer closeRepos()

	graph, err := nav.LoadGraph()
	if err != nil {
		logger.Fatal("Failed to load route graph", zap.Error(err))
	}

	client := backend.NewClient(cfg.Backend.BaseURL, sess, logger)
	mailer := emailjs.NewClient(cfg.EmailJS.BaseURL, logger)
	center := notify.NewCenter(notify.DefaultTTL)

	auth := service.NewAuthFlow(client, mailer, emailjs.Template(cfg.EmailJS.OTP), sess, cfg.Backend.AuthTimeout, logger)
	checkout := service.NewCheckoutService(service.CheckoutDeps{
		Backend:  client,
		Session:  sess,
		Store:    store,
		Repos:    repos,
		Graph:    graph,
		Notifier: center,
		Mailer:   mailer,
		Confirm:  emailjs.Template(cfg.EmailJS.Confirm),
		FromName: cfg.EmailJS.FromName,
		Timeouts: cfg.Backend,
		Logger:   logger,
	})

	router := api.NewRouter(api.Deps{
		Config:   cfg,
		Session:  sess,
		Graph:    graph,
		Auth:     auth,
		Checkout: checkout,
		Notifier: center,
		Tracker:  lifecycle.NewTracker(),
		Logger:   logger,
	})

	// Create HTTP server. Contract generation can take up to its own timeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Backend.ContractTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Token revalidation: once on startup, then on every interval
	verifier := session.VerifierFunc(func(ctx context.Context) (string, error) {
		return client.VerifyToken(ctx, backend.WithTimeout(cfg.Backend.VerifyTimeout))
	})
	go sess.RunRevalidationLoop(ctx, verifier, cfg.Session.RevalidateInterval)
	logger.Info("Session revalidation started", zap.Duration("interval", cfg.Session.RevalidateInterval))

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// openRepositories uses postgres when DB_HOST is set and memory otherwise
func openRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Repositories, func()) {
	if !cfg.Database.Enabled() {
		logger.Info("DB_HOST not set, keeping draft checkpoints in memory")
		return memory.NewRepositories(), func() {}
	}

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	schema, err := migrations.FS.ReadFile(migrations.InitSchema)
	if err != nil {
		logger.Fatal("Failed to read schema", zap.Error(err))
	}
	if err := postgres.Migrate(ctx, db, string(schema)); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	return postgres.NewRepositories(db, logger), func() { db.Close() }
}
