package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanger/internal/core"
	"finanger/internal/csvimport"
	"finanger/internal/store"
)

func newTransactionService(t *testing.T) *TransactionService {
	t.Helper()
	txs := store.NewTransactionStore(t.TempDir())
	return NewTransactionService(txs, nil, testLogger())
}

func validTx() core.Transaction {
	return core.Transaction{
		Date:          "2025-03-01",
		Type:          core.Expense,
		Currency:      "CNY",
		Amount:        20,
		Category:      "Food",
		PaymentMethod: "Cash",
	}
}

func TestTransactionService_AddValidates(t *testing.T) {
	ctx := context.Background()
	svc := newTransactionService(t)

	require.NoError(t, svc.Add(ctx, "u1", validTx()))
	assert.ErrorIs(t, svc.Add(ctx, "u1", validTx()), store.ErrDuplicateTransaction)

	bad := validTx()
	bad.Date = "01/03/2025"
	assert.ErrorIs(t, svc.Add(ctx, "u1", bad), core.ErrInvalidDate)

	bad = validTx()
	bad.Type = "Transfer"
	assert.ErrorIs(t, svc.Add(ctx, "u1", bad), core.ErrInvalidType)

	bad = validTx()
	bad.Amount = -1
	assert.ErrorIs(t, svc.Add(ctx, "u1", bad), core.ErrInvalidAmount)
}

func TestTransactionService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTransactionService(t)

	old := validTx()
	require.NoError(t, svc.Add(ctx, "u1", old))

	updated := old
	updated.Amount = 35
	require.NoError(t, svc.Update(ctx, "u1", old, updated))
	assert.ErrorIs(t, svc.Delete(ctx, "u1", old), store.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "u1", updated))
	txs, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

const importCSV = `Transaction Date,Transaction Type,Currency,Amount,Category,Payment Method
2025-01-05,Expense,CNY,25.50,Food,Cash
2025-01-05,Expense,CNY,25.50,Food,Cash
2025-01-06,Income,CNY,not-a-number,Salary,Bank
2025-01-07,Income,CNY,5000,Salary,Bank
`

func TestTransactionService_ImportCSV(t *testing.T) {
	ctx := context.Background()
	svc := newTransactionService(t)

	result, err := svc.ImportCSV(ctx, "u1", strings.NewReader(importCSV))
	require.NoError(t, err)
	assert.Len(t, result.Imported, 2)
	assert.Equal(t, 1, result.SkippedMalformed)
	assert.Equal(t, 1, result.SkippedDuplicates)

	txs, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	// Importing the identical file again changes nothing.
	result, err = svc.ImportCSV(ctx, "u1", strings.NewReader(importCSV))
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Equal(t, 3, result.SkippedDuplicates)

	txs, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestTransactionService_ImportCSVBadHeaderAborts(t *testing.T) {
	ctx := context.Background()
	svc := newTransactionService(t)

	_, err := svc.ImportCSV(ctx, "u1", strings.NewReader("date,type,currency,amount,category,method\n"))
	assert.ErrorIs(t, err, csvimport.ErrHeaderMismatch)

	txs, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTransactionService_RequestExportWithoutBroker(t *testing.T) {
	svc := newTransactionService(t)

	_, err := svc.RequestExport(context.Background(), "u1", "", "", "")
	assert.ErrorIs(t, err, ErrExportUnavailable)
}
