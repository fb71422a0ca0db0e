package services

import (
	"context"
	"time"

	"finanger/internal/backend"
	"finanger/internal/core"
	"finanger/internal/log"
	"finanger/internal/report"
)

// monthLayout buckets series rows by calendar month.
const monthLayout = "2006-01"

// Summary is the assembled report for one user over an optional date range.
type Summary struct {
	IncomeTotal  float64               `json:"incomeTotal"`
	ExpenseTotal float64               `json:"expenseTotal"`
	Net          float64               `json:"net"`
	Currency     string                `json:"currency,omitempty"`
	Monthly      []report.SeriesRow    `json:"monthly"`
	Categories   []report.CategoryShare `json:"categories"`
}

// ReportService assembles summaries from the transaction repository.
type ReportService struct {
	txs    backend.TransactionRepository
	logger *log.Logger
}

func NewReportService(txs backend.TransactionRepository, logger *log.Logger) *ReportService {
	return &ReportService{
		txs:    txs,
		logger: logger.WithComponent(log.ComponentReports),
	}
}

// Summary loads, filters, optionally normalizes to one currency, and
// aggregates the user's transactions. Empty date bounds leave that side of
// the range open; an empty target currency skips conversion and leaves
// amounts in their original currencies.
func (s *ReportService) Summary(ctx context.Context, userID, startDate, endDate, targetCurrency string) (Summary, error) {
	txs, err := s.txs.Load(userID)
	if err != nil {
		return Summary{}, err
	}

	if startDate != "" || endDate != "" {
		start, end, err := parseRange(startDate, endDate)
		if err != nil {
			return Summary{}, err
		}
		txs, err = report.FilterByDateRange(txs, start, end)
		if err != nil {
			return Summary{}, err
		}
	}

	if targetCurrency != "" {
		txs, err = report.NormalizeCurrency(txs, targetCurrency)
		if err != nil {
			return Summary{}, err
		}
	}

	monthly, err := report.Series(txs, monthLayout)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Currency:   targetCurrency,
		Monthly:    monthly,
		Categories: report.ExpenseByCategory(txs),
	}
	for _, row := range monthly {
		summary.IncomeTotal += row.IncomeTotal
		summary.ExpenseTotal += row.ExpenseTotal
	}
	summary.Net = summary.IncomeTotal - summary.ExpenseTotal

	s.logger.InfoContext(ctx, "Report assembled",
		log.FieldOperation, log.OpRead,
		log.FieldUserID, userID,
		log.FieldTransactionCount, len(txs))

	return summary, nil
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	if startDate != "" {
		parsed, err := time.Parse(core.DateLayout, startDate)
		if err != nil {
			return time.Time{}, time.Time{}, core.ErrInvalidDate
		}
		start = parsed
	}
	if endDate != "" {
		parsed, err := time.Parse(core.DateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, core.ErrInvalidDate
		}
		end = parsed
	}
	return start, end, nil
}
