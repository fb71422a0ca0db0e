// Package worker renders report-export requests consumed from the message
// queue into CSV artifacts on disk.
package worker

import (
	"context"
	"fmt"

	"finanger/internal/amqp"
	"finanger/internal/export"
	"finanger/internal/log"
	"finanger/internal/services"
)

// ExportWorker handles report-export messages: assemble the summary, write
// the artifact, done. Failures bubble up so the consumer can requeue.
type ExportWorker struct {
	reports *services.ReportService
	writer  *export.Writer
	logger  *log.Logger
}

func NewExportWorker(reports *services.ReportService, writer *export.Writer, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		reports: reports,
		writer:  writer,
		logger:  logger.WithComponent(log.ComponentWorker),
	}
}

// HandleExportMessage processes a single export request.
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.ReportExportMessage) error {
	w.logger.InfoContext(ctx, "Processing export request",
		log.FieldExportID, msg.ExportID,
		log.FieldUserID, msg.UserID)

	summary, err := w.reports.Summary(ctx, msg.UserID, msg.StartDate, msg.EndDate, msg.TargetCurrency)
	if err != nil {
		return fmt.Errorf("assemble report: %w", err)
	}

	path, err := w.writer.WriteSummary(msg.ExportID, summary)
	if err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	w.logger.InfoContext(ctx, "Export artifact written",
		log.FieldExportID, msg.ExportID,
		log.FieldUserID, msg.UserID,
		"path", path)

	return nil
}
