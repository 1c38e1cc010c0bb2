package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vancelodge/lodge-billing/internal/config"
	"github.com/vancelodge/lodge-billing/internal/db"
	"github.com/vancelodge/lodge-billing/internal/server"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Provision the store and exit")

func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	dbConn, err := db.ConnectAndMigrate(cfg.DatabasePath, cfg.Migrations)
	if err != nil {
		// The system cannot run without a provisioned store.
		logger.Error("store provisioning failed", "err", err)
		os.Exit(1)
	}
	if *migrateOnlyFlag {
		logger.Info("store provisioned; exiting as requested")
		return
	}

	logger.Info("starting server", "env", cfg.AppEnv, "addr", cfg.AppAddr, "db", cfg.DatabasePath)
	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      withLogging(logger, server.New(dbConn)),
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", "err", err)
	}
	logger.Info("server gracefully stopped")
}
