package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justsurfingit/job-corner/internal/auth"
	"github.com/justsurfingit/job-corner/internal/config"
	"github.com/justsurfingit/job-corner/internal/database"
	"github.com/justsurfingit/job-corner/internal/handlers"
	"github.com/justsurfingit/job-corner/internal/repository"
	"github.com/justsurfingit/job-corner/internal/services"
)

func main() {
	// 1. Load Environment Variables (a missing .env is fine outside local dev)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	// 2. Database Connection
	db, err := database.Connect(cfg.PostgresDSN, logger)
	if err != nil {
		logger.Error("database connection failed", "event", "startup_failed", "error", err.Error())
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()
	if err := database.Migrate(db, logger); err != nil {
		logger.Error("database migration failed", "event", "startup_failed", "error", err.Error())
		os.Exit(1)
	}

	// 3. Initialize Core Services (Dependencies)
	store := repository.NewPostgres(db, logger)
	sessions := auth.NewSessionStore(store, cfg.SessionTTL, logger)
	accountService := services.NewAccountService(store, sessions, logger)
	jobService := services.NewJobService(store, logger)
	applicationService := services.NewApplicationService(store, store, logger)

	// 4. Initialize Handlers
	cookie := handlers.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.SecureCookies}
	router := handlers.NewEngine(handlers.Router{
		Auth:         handlers.NewAuthHandler(accountService, cookie, logger),
		Jobs:         handlers.NewJobHandler(jobService, logger),
		Applications: handlers.NewApplicationHandler(applicationService, logger),
		Sessions:     sessions,
		Logger:       logger,
	}, handlers.RouterConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Cookie:         cookie,
	})

	// 5. Serve until interrupted
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "event", "server_started", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "event", "server_failed", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "event", "server_shutdown_failed", "error", err.Error())
	}
	logger.Info("server stopped", "event", "server_stopped")
}
