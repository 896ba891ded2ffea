package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"symptom-drift/internal/adapters/auth/iam"
	"symptom-drift/internal/adapters/extraction/gemini"
	pg "symptom-drift/internal/adapters/storage/postgres"
	"symptom-drift/internal/domain/symptoms"
	"symptom-drift/internal/platform/config"
	"symptom-drift/internal/platform/httpclient"
	"symptom-drift/internal/platform/logger"
	"symptom-drift/internal/platform/metrics"
	"symptom-drift/internal/ports/auth"
	"symptom-drift/internal/ports/extraction"
	"symptom-drift/internal/router"
)

// @title Symptom Drift API
// @version 1.0
// @description Registro de síntomas y cálculo del Symptom Drift Index por paciente.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromStrings("error", "text", "symptom-drift").Error("invalid config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.NewFromStrings(cfg.LogLevel, cfg.LogFormat, cfg.AppName)

	catalog, err := symptoms.Default()
	if err != nil {
		log.Error("symptom catalog", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (DB_DSN vacío)", nil)
	}

	var verifier auth.AuthVerifier
	if cfg.IAMEnabled() {
		v, err := iam.NewVerifier(iam.Config{
			BaseURL: cfg.IAMBaseURL,
			APIKey:  cfg.IAMAPIKey,
			Timeout: cfg.HTTPClientTimeout,
		})
		if err != nil {
			log.Error("iam verifier", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = v
	} else {
		log.Warn("auth: modo dev, se acepta X-Debug-User-ID", nil)
	}

	var extractor extraction.Extractor
	if cfg.GeminiEnabled() {
		client, err := httpclient.NewWithOptions(httpclient.Options{
			Timeout:    cfg.HTTPClientTimeout,
			UserAgent:  cfg.AppName,
			MaxRetries: 1,
		})
		if err != nil {
			log.Error("http client", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		extractor = gemini.New(client, catalog, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:      verifier,
		DB:                db,
		Logger:            log,
		Metrics:           metrics.New(),
		Extractor:         extractor,
		Catalog:           catalog,
		PreviousWindow:    cfg.PreviousScoresWindow,
		MaxSymptomsPerLog: cfg.MaxSymptomsPerLog,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", map[string]any{"error": err.Error()})
	}
	log.Info("server stopped", nil)
}
