// Package main is the entry point for the finance tracker API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	"gitlab.com/yelinaung/fintrack/internal/api"
	"gitlab.com/yelinaung/fintrack/internal/config"
	"gitlab.com/yelinaung/fintrack/internal/database"
	"gitlab.com/yelinaung/fintrack/internal/gemini"
	"gitlab.com/yelinaung/fintrack/internal/ledger"
	"gitlab.com/yelinaung/fintrack/internal/logger"
	"gitlab.com/yelinaung/fintrack/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 15 * time.Second
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("fintrack %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	// token <user-id> prints a bearer token for local testing.
	if len(os.Args) > 2 && os.Args[1] == "token" {
		userID, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil || userID <= 0 {
			logger.Log.Fatal().Str("arg", os.Args[2]).Msg("Invalid user id")
		}
		tok, err := api.IssueToken([]byte(cfg.JWTSecret), userID, tokenTTL)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to issue token")
		}
		fmt.Println(tok)
		return
	}

	logger.SetLevel(cfg.LogLevel)
	logger.SetFormat(cfg.LogFormat)
	logger.InitHashSalt()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Options{
		Exporter:    cfg.OTelExporter,
		ServiceName: cfg.OTelServiceName,
	})
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up telemetry")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			logger.Log.Warn().Err(err).Msg("Telemetry shutdown failed")
		}
	}()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	if err := database.SeedPaymentMethods(ctx, pool); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to seed payment methods")
	}

	logger.Log.Info().Msg("Database initialized successfully")

	svc := ledger.NewService(pool, ledger.Options{
		Location:           cfg.Location(),
		DefaultHistoryDays: cfg.HistoryDefaultDays,
	})

	deps := api.Deps{
		Ledger:      svc,
		Secret:      []byte(cfg.JWTSecret),
		AllowOrigin: cfg.IsOriginAllowed,
		Location:    cfg.Location(),
	}
	if cfg.GeminiEnabled() {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Gemini client unavailable, category suggestions disabled")
		} else {
			deps.Suggester = client
			logger.Log.Info().Str("model", gemini.ModelName).Msg("Category suggestions enabled")
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().Str("addr", cfg.HTTPAddr).Str("version", version).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info().Msg("Shutting down...")
	case err := <-errCh:
		if err != nil {
			logger.Log.Error().Err(err).Msg("HTTP server failed")
		}
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
}
