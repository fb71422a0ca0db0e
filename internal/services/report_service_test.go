package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanger/internal/core"
	"finanger/internal/store"
)

func newReportService(t *testing.T) (*ReportService, *TransactionService) {
	t.Helper()
	txs := store.NewTransactionStore(t.TempDir())
	return NewReportService(txs, testLogger()), NewTransactionService(txs, nil, testLogger())
}

func seedTx(t *testing.T, svc *TransactionService, date string, txType core.TransactionType, amount float64, category string) {
	t.Helper()
	require.NoError(t, svc.Add(context.Background(), "u1", core.Transaction{
		Date:          date,
		Type:          txType,
		Currency:      "CNY",
		Amount:        amount,
		Category:      category,
		PaymentMethod: "Cash",
	}))
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()
	reports, txs := newReportService(t)

	seedTx(t, txs, "2025-01-10", core.Income, 5000, "Salary")
	seedTx(t, txs, "2025-01-15", core.Expense, 200, "Food")
	seedTx(t, txs, "2025-02-03", core.Expense, 300, "Rent")

	summary, err := reports.Summary(ctx, "u1", "", "", "")
	require.NoError(t, err)

	assert.Equal(t, 5000.0, summary.IncomeTotal)
	assert.Equal(t, 500.0, summary.ExpenseTotal)
	assert.Equal(t, 4500.0, summary.Net)

	require.Len(t, summary.Monthly, 2)
	assert.Equal(t, "2025-01", summary.Monthly[0].Label)
	assert.Equal(t, "2025-02", summary.Monthly[1].Label)

	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "Rent", summary.Categories[0].Category)
	assert.Equal(t, "Food", summary.Categories[1].Category)
}

func TestReportService_SummaryDateRange(t *testing.T) {
	ctx := context.Background()
	reports, txs := newReportService(t)

	seedTx(t, txs, "2025-01-10", core.Income, 5000, "Salary")
	seedTx(t, txs, "2025-02-03", core.Expense, 300, "Rent")

	summary, err := reports.Summary(ctx, "u1", "2025-02-01", "2025-02-28", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.IncomeTotal)
	assert.Equal(t, 300.0, summary.ExpenseTotal)

	_, err = reports.Summary(ctx, "u1", "February", "", "")
	assert.ErrorIs(t, err, core.ErrInvalidDate)
}

func TestReportService_SummaryNormalizesCurrency(t *testing.T) {
	ctx := context.Background()
	reports, txs := newReportService(t)

	// 100 CNY converts through USD: 100 * 0.1408 = 14.08 USD.
	seedTx(t, txs, "2025-03-01", core.Expense, 100, "Food")

	summary, err := reports.Summary(ctx, "u1", "", "", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 14.08, summary.ExpenseTotal, 1e-9)
	assert.Equal(t, "USD", summary.Currency)
}

func TestReportService_SummaryEmptyStore(t *testing.T) {
	reports, _ := newReportService(t)

	summary, err := reports.Summary(context.Background(), "u1", "", "", "")
	require.NoError(t, err)
	assert.Zero(t, summary.IncomeTotal)
	assert.Empty(t, summary.Monthly)
	assert.Empty(t, summary.Categories)
}
