package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/autou/mailtriage/classifier"
	"github.com/autou/mailtriage/composer"
	"github.com/autou/mailtriage/config"
	"github.com/autou/mailtriage/db"
	"github.com/autou/mailtriage/extractor"
	"github.com/autou/mailtriage/llm_service"
	"github.com/autou/mailtriage/logging"
	"github.com/autou/mailtriage/mailer"
	"github.com/autou/mailtriage/metrics"
	"github.com/autou/mailtriage/normalizer"
	"github.com/autou/mailtriage/pipeline"
	"github.com/autou/mailtriage/resilience"
	"github.com/autou/mailtriage/server"
	"github.com/autou/mailtriage/storage"
)

func main() {
	cfg := config.Load()

	logger, err := initLogger(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer pool.Close()

	triageMetrics := metrics.Default()

	executor := resilience.NewExecutor(resilience.Config{
		MaxAttempts:    cfg.LLMMaxAttempts,
		InitialBackoff: cfg.LLMInitialBackoff,
		BreakerEnabled: true,
	}, logger)

	gemini := llm_service.NewGeminiService(
		cfg.GeminiAPIURL, cfg.GeminiAPIKey, cfg.GeminiModel,
		executor, triageMetrics, logger)

	coordinator := pipeline.NewCoordinator(
		extractor.NewDocumentExtractor(logger),
		normalizer.New(logger),
		classifier.New(gemini, logger),
		composer.New(gemini, logger),
		triageMetrics,
		logger,
	)

	store := storage.NewEmailRecordStore(pool)
	smtpMailer := mailer.NewSMTPMailer(
		cfg.SMTPHost, cfg.SMTPPort,
		cfg.SMTPSenderEmail, cfg.SMTPSenderPassword, logger)

	r := server.SetupRoutes(coordinator, store, smtpMailer, logger)
	n := server.SetupNegroni(r)

	if cfg.Environment == "production" {
		server.ServeProduction(n, server.Config{
			Domains:      cfg.Domains,
			CertCacheDir: cfg.CertCacheDir,
			HTTPSPort:    cfg.HTTPSPort,
		})
	} else {
		srv := &http.Server{
			Addr:         ":" + cfg.HTTPPort,
			Handler:      n,
			IdleTimeout:  time.Minute,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		logger.Info("Starting development server", slog.String("port", cfg.HTTPPort))
		server.ServeDevelopment(srv)
	}
}

func initLogger(logDir string) (*slog.Logger, error) {
	handler, err := logging.NewDailyFileHandler(logDir, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}
