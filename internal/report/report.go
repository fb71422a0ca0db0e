// Package report aggregates in-memory transaction slices into the plain row
// shapes consumed by renderers: dated income/expense series and per-category
// expense shares. Functions here are pure; they never touch storage.
package report

import (
	"fmt"
	"sort"
	"time"

	"finanger/internal/core"
	"finanger/internal/currency"
)

// SeriesRow is one bucket of the income/expense series.
type SeriesRow struct {
	Label        string  `json:"label"`
	IncomeTotal  float64 `json:"incomeTotal"`
	ExpenseTotal float64 `json:"expenseTotal"`
}

// CategoryShare is one slice of the expense-by-category breakdown.
type CategoryShare struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// FilterByDateRange returns the transactions whose date falls inside the
// inclusive [start, end] range. A transaction with a malformed stored date
// aborts the whole call: a partial aggregate would silently misreport.
func FilterByDateRange(txs []core.Transaction, start, end time.Time) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, tx := range txs {
		d, err := tx.ParsedDate()
		if err != nil {
			return nil, fmt.Errorf("transaction dated %q: %w", tx.Date, err)
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// Series groups income and expense sums per bucket. Bucket granularity is
// controlled solely by labelLayout (a time layout string): "2006-01-02" for
// daily rows, "2006-01" for monthly. Rows come back in chronological order
// of first occurrence within each label.
func Series(txs []core.Transaction, labelLayout string) ([]SeriesRow, error) {
	type bucket struct {
		row   SeriesRow
		first time.Time
	}
	buckets := make(map[string]*bucket)
	for _, tx := range txs {
		d, err := tx.ParsedDate()
		if err != nil {
			return nil, fmt.Errorf("transaction dated %q: %w", tx.Date, err)
		}
		label := d.Format(labelLayout)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{row: SeriesRow{Label: label}, first: d}
			buckets[label] = b
		}
		if d.Before(b.first) {
			b.first = d
		}
		switch tx.Type {
		case core.Income:
			b.row.IncomeTotal += tx.Amount
		case core.Expense:
			b.row.ExpenseTotal += tx.Amount
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].first.Equal(ordered[j].first) {
			return ordered[i].row.Label < ordered[j].row.Label
		}
		return ordered[i].first.Before(ordered[j].first)
	})

	rows := make([]SeriesRow, len(ordered))
	for i, b := range ordered {
		rows[i] = b.row
	}
	return rows, nil
}

// ExpenseByCategory sums expense amounts per category. Income rows are
// ignored. Shares come back largest first; ties break on category name.
func ExpenseByCategory(txs []core.Transaction) []CategoryShare {
	totals := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		totals[tx.Category] += tx.Amount
	}

	shares := make([]CategoryShare, 0, len(totals))
	for cat, total := range totals {
		shares = append(shares, CategoryShare{Category: cat, Total: total})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Total == shares[j].Total {
			return shares[i].Category < shares[j].Category
		}
		return shares[i].Total > shares[j].Total
	})
	return shares
}

// NormalizeCurrency returns a copy of txs with every amount converted to the
// target currency through the fixed-rate table. The input is not modified.
func NormalizeCurrency(txs []core.Transaction, target string) ([]core.Transaction, error) {
	out := make([]core.Transaction, len(txs))
	for i, tx := range txs {
		converted, err := currency.Convert(tx.Amount, tx.Currency, target)
		if err != nil {
			return nil, fmt.Errorf("transaction dated %s: %w", tx.Date, err)
		}
		tx.Amount = converted
		tx.Currency = target
		out[i] = tx
	}
	return out, nil
}
