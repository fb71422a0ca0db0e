package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"finanger/internal/amqp"
	"finanger/internal/backend"
	"finanger/internal/core"
	"finanger/internal/csvimport"
	"finanger/internal/log"
)

// ErrExportUnavailable is returned when a report export is requested but no
// message broker is configured.
var ErrExportUnavailable = errors.New("report export unavailable: no broker configured")

// TransactionService orchestrates transaction CRUD, CSV import and the async
// report-export pipeline.
type TransactionService struct {
	txs        backend.TransactionRepository
	amqpClient *amqp.Client
	logger     *log.Logger
}

func NewTransactionService(txs backend.TransactionRepository, amqpClient *amqp.Client, logger *log.Logger) *TransactionService {
	return &TransactionService{
		txs:        txs,
		amqpClient: amqpClient,
		logger:     logger.WithComponent(log.ComponentTxns),
	}
}

// List returns the user's full transaction set.
func (s *TransactionService) List(ctx context.Context, userID string) ([]core.Transaction, error) {
	return s.txs.Load(userID)
}

// Add validates and stores one transaction.
func (s *TransactionService) Add(ctx context.Context, userID string, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.txs.Add(userID, t); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, userID,
		log.FieldCategory, t.Category,
		log.FieldAmount, t.Amount)

	return nil
}

// Update replaces the first record structurally equal to old with updated.
func (s *TransactionService) Update(ctx context.Context, userID string, old, updated core.Transaction) error {
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := s.txs.Update(userID, old, updated); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Transaction updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldUserID, userID)

	return nil
}

// Delete removes the first record structurally equal to t.
func (s *TransactionService) Delete(ctx context.Context, userID string, t core.Transaction) error {
	if err := s.txs.Delete(userID, t); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, userID)

	return nil
}

// ImportCSV parses the upload against the user's existing records and appends
// all surviving rows with a single store write. Re-importing the same file is
// a no-op: every row dedupes against what the first run stored.
func (s *TransactionService) ImportCSV(ctx context.Context, userID string, r io.Reader) (csvimport.Result, error) {
	existing, err := s.txs.Load(userID)
	if err != nil {
		return csvimport.Result{}, err
	}

	result, err := csvimport.Parse(r, existing)
	if err != nil {
		return csvimport.Result{}, err
	}

	if len(result.Imported) > 0 {
		if err := s.txs.Replace(userID, append(existing, result.Imported...)); err != nil {
			return csvimport.Result{}, fmt.Errorf("store imported rows: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "CSV import completed",
		log.FieldOperation, log.OpImport,
		log.FieldUserID, userID,
		log.FieldImported, len(result.Imported),
		log.FieldSkipped, result.SkippedMalformed+result.SkippedDuplicates)

	return result, nil
}

// RequestExport publishes an async report-export request and returns the
// export id the worker will write the artifact under.
func (s *TransactionService) RequestExport(ctx context.Context, userID, startDate, endDate, targetCurrency string) (string, error) {
	if s.amqpClient == nil {
		return "", ErrExportUnavailable
	}

	exportID := uuid.NewString()
	msg := amqp.NewReportExportMessage(exportID, userID, startDate, endDate, targetCurrency)
	if err := s.amqpClient.PublishReportExport(ctx, msg); err != nil {
		return "", fmt.Errorf("publish export request: %w", err)
	}

	s.logger.InfoContext(ctx, "Report export requested",
		log.FieldOperation, log.OpExport,
		log.FieldUserID, userID,
		log.FieldExportID, exportID)

	return exportID, nil
}
