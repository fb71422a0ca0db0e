package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"finanger/internal/ai"
	"finanger/internal/amqp"
	"finanger/internal/cli"
	apphttp "finanger/internal/http"
	"finanger/internal/log"
	"finanger/internal/rules"
	"finanger/internal/services"
	"finanger/internal/settings"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)

	cfg := cli.LoadAndValidateConfig(logger)

	fieldKey, err := cfg.FieldKey()
	if err != nil {
		logger.Error("Invalid field encryption key", log.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)
	result := cli.InitBackend(ctx, logger, cfg)
	if result.Cleanup != nil {
		defer func() { _ = result.Cleanup() }()
	}

	// AMQP is optional: without it report exports come back 503 while
	// everything else keeps working.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	} else {
		logger.Info("AMQP disabled, report exports unavailable")
	}

	// The AI endpoint is optional too: category suggestions fall back to
	// the keyword rules and chat becomes unavailable.
	var aiClient *ai.Client
	if cfg.AIBaseURL != "" {
		aiClient = ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
		logger.Info("AI endpoint configured", "model", cfg.AIModel)
	} else {
		logger.Info("AI disabled, using keyword rules for suggestions")
	}

	engine, err := loadRules(cfg.RulesFile)
	if err != nil {
		logger.Error("Failed to load category rules", log.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Users:              services.NewUserService(result.Backend.Users, fieldKey, logger),
		Txs:                services.NewTransactionService(result.Backend.Transactions, amqpClient, logger),
		Goals:              services.NewGoalService(result.Backend.Goals, logger),
		Reports:            services.NewReportService(result.Backend.Transactions, logger),
		Suggestions:        services.NewSuggestionService(aiClient, engine, logger),
		Settings:           settings.NewStore(filepath.Join(cfg.DataDir, "settings")),
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Logger:             logger,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	}()

	logger.Info("Starting finanger server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
}

func loadRules(path string) (*rules.Engine, error) {
	if path != "" {
		return rules.LoadFromFile(path)
	}
	return rules.LoadEmbedded()
}
