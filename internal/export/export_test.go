package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanger/internal/report"
	"finanger/internal/services"
)

func TestWriteSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	w := NewWriter(dir)

	path, err := w.WriteSummary("exp-1", services.Summary{
		IncomeTotal:  5000,
		ExpenseTotal: 500,
		Net:          4500,
		Monthly: []report.SeriesRow{
			{Label: "2025-01", IncomeTotal: 5000, ExpenseTotal: 200},
			{Label: "2025-02", ExpenseTotal: 300},
		},
		Categories: []report.CategoryShare{
			{Category: "Rent", Total: 300},
			{Category: "Food", Total: 200},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exp-1.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	want := [][]string{
		{"section", "label", "income", "expense"},
		{"totals", "all", "5000.00", "500.00"},
		{"monthly", "2025-01", "5000.00", "200.00"},
		{"monthly", "2025-02", "0.00", "300.00"},
		{"category", "Rent", "", "300.00"},
		{"category", "Food", "", "200.00"},
	}
	assert.Equal(t, want, records)
}

func TestWriteSummaryNeverLeavesTempFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	_, err := w.WriteSummary("exp-2", services.Summary{})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "exp-2.csv", entries[0].Name())
}
