package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"finanger/internal/amqp"
	"finanger/internal/cli"
	"finanger/internal/export"
	"finanger/internal/log"
	"finanger/internal/services"
	"finanger/internal/worker"
)

// consumeRetryDelay spaces out reconnect attempts after a broker error.
const consumeRetryDelay = 5 * time.Second

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)

	logger.Info("Starting finanger-worker", log.FieldOperation, log.OpStartup)

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	result := cli.InitBackend(ctx, logger, cfg)
	if result.Cleanup != nil {
		defer func() { _ = result.Cleanup() }()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to connect to AMQP broker", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	reports := services.NewReportService(result.Backend.Transactions, logger)
	exportWorker := worker.NewExportWorker(reports, export.NewWriter(cfg.ExportDir), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			err := amqpClient.ConsumeReportExports(gctx, func(msg *amqp.ReportExportMessage) error {
				return exportWorker.HandleExportMessage(gctx, msg)
			})
			if err == nil || errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Error("Message consumption failed, retrying", log.FieldError, err)
			select {
			case <-gctx.Done():
				return nil
			case <-time.After(consumeRetryDelay):
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker error", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully", log.FieldOperation, log.OpShutdown)
}
