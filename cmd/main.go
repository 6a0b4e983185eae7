// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/weddingwander/weddingwander/internal/config"
	"github.com/weddingwander/weddingwander/internal/database"
	"github.com/weddingwander/weddingwander/internal/handler"
	"github.com/weddingwander/weddingwander/internal/repository"
	"github.com/weddingwander/weddingwander/internal/service"
)

func main() {
	ctx := context.Background()

	// ── 1. Configuration and logging ─────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	setupLogging(cfg.Log)

	// ── 2. Open the store and seed it ────────────────────────────────────
	store, err := database.Open(ctx, cfg.Storage)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	defer store.Close()
	logrus.WithField("driver", cfg.Storage.Driver).Info("store opened")

	if err := repository.Seed(ctx, store); err != nil {
		logrus.Fatalf("seed: %v", err)
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	eventRepo := repository.NewEventRepository(store)
	regRepo := repository.NewRegistrationRepository(store)
	accountRepo := repository.NewAccountRepository(store)

	catalog := service.NewCatalog(eventRepo)

	if len(os.Args) > 1 && os.Args[1] == "search" {
		if err := runSearch(ctx, catalog, cfg.Catalog.SearchDebounce, os.Stdin, os.Stdout); err != nil {
			logrus.Fatalf("search: %v", err)
		}
		return
	}

	ledger := service.NewLedger(eventRepo, regRepo, service.LedgerPolicy{
		AllowReregister: cfg.Ledger.AllowReregister,
		MaxGuests:       cfg.Ledger.MaxGuests,
	}, service.WithNotifier(service.LogNotifier{Log: logrus.WithField("component", "notifier")}))
	identity := service.NewIdentity(accountRepo)
	tokens := service.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// ── 4. Build the router ───────────────────────────────────────────────
	r := handler.NewRouter(handler.RouterConfig{
		Weddings:    handler.NewWeddingHandler(catalog, ledger),
		Auth:        handler.NewAuthHandler(identity, tokens),
		AuthLimiter: handler.NewRateLimiter(cfg.Auth.LoginRPS, cfg.Auth.LoginBurst),
		StaticDir:   cfg.Server.StaticDir,
	})

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
		return
	}
	logrus.Info("server stopped")
}

func setupLogging(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "text" {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}
	logrus.SetOutput(os.Stdout)
}
