package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanger/internal/core"
)

func tx(date string, typ core.TransactionType, amount float64, category string) core.Transaction {
	return core.Transaction{
		Date:          date,
		Type:          typ,
		Currency:      "CNY",
		Amount:        amount,
		Category:      category,
		PaymentMethod: "Card",
	}
}

func day(s string) time.Time {
	d, err := time.Parse(core.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFilterByDateRangeInclusive(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-02-28", core.Expense, 10, "Food"),
		tx("2025-03-01", core.Expense, 20, "Food"),
		tx("2025-03-15", core.Income, 30, "Salary"),
		tx("2025-03-31", core.Expense, 40, "Rent"),
		tx("2025-04-01", core.Expense, 50, "Food"),
	}

	got, err := FilterByDateRange(txs, day("2025-03-01"), day("2025-03-31"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2025-03-01", got[0].Date)
	assert.Equal(t, "2025-03-31", got[2].Date)
}

func TestFilterByDateRangeMalformedDateAborts(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-03-01", core.Expense, 20, "Food"),
		tx("not-a-date", core.Expense, 5, "Food"),
	}
	_, err := FilterByDateRange(txs, day("2025-03-01"), day("2025-03-31"))
	assert.Error(t, err)
}

func TestSeriesDailyBuckets(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-03-02", core.Expense, 15, "Food"),
		tx("2025-03-01", core.Income, 100, "Salary"),
		tx("2025-03-01", core.Expense, 25, "Food"),
		tx("2025-03-02", core.Expense, 5, "Transport"),
	}

	rows, err := Series(txs, core.DateLayout)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, SeriesRow{Label: "2025-03-01", IncomeTotal: 100, ExpenseTotal: 25}, rows[0])
	assert.Equal(t, SeriesRow{Label: "2025-03-02", IncomeTotal: 0, ExpenseTotal: 20}, rows[1])
}

func TestSeriesMonthlyLabelCoarsensBuckets(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-03-01", core.Expense, 10, "Food"),
		tx("2025-03-20", core.Expense, 30, "Food"),
		tx("2025-04-02", core.Income, 99, "Salary"),
	}

	rows, err := Series(txs, "2006-01")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, SeriesRow{Label: "2025-03", ExpenseTotal: 40}, rows[0])
	assert.Equal(t, SeriesRow{Label: "2025-04", IncomeTotal: 99}, rows[1])
}

func TestExpenseByCategory(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-03-01", core.Expense, 25, "Food"),
		tx("2025-03-02", core.Expense, 40, "Rent"),
		tx("2025-03-03", core.Expense, 15, "Food"),
		tx("2025-03-04", core.Income, 500, "Salary"),
	}

	shares := ExpenseByCategory(txs)
	// Food and Rent tie at 40; the tie breaks alphabetically.
	assert.Equal(t, []CategoryShare{
		{Category: "Food", Total: 40},
		{Category: "Rent", Total: 40},
	}, shares)
}

func TestNormalizeCurrency(t *testing.T) {
	txs := []core.Transaction{
		{Date: "2025-03-01", Type: core.Expense, Currency: "USD", Amount: 100, Category: "Food", PaymentMethod: "Card"},
	}
	got, err := NormalizeCurrency(txs, "CNY")
	require.NoError(t, err)
	assert.InDelta(t, 710.0, got[0].Amount, 1e-9)
	assert.Equal(t, "CNY", got[0].Currency)
	// input untouched
	assert.Equal(t, 100.0, txs[0].Amount)

	_, err = NormalizeCurrency([]core.Transaction{
		{Date: "2025-03-01", Type: core.Expense, Currency: "GBP", Amount: 1, Category: "x"},
	}, "CNY")
	assert.Error(t, err)
}
