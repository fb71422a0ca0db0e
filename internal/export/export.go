// Package export writes report artifacts to disk as CSV files. The worker
// renders one artifact per export request; the file name is the export id so
// callers can locate the result without a lookup table.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"finanger/internal/services"
)

// Writer writes summary artifacts under its base directory.
type Writer struct {
	dir string
}

// NewWriter returns a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// WriteSummary renders the summary as a CSV artifact and returns its path.
// The write goes through a temp-file rename so a crash mid-render never
// leaves a truncated artifact behind.
func (w *Writer) WriteSummary(exportID string, s services.Summary) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(w.dir, exportID+".csv")
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}

	if err := writeSummaryCSV(f, s); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close artifact: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("replace artifact: %w", err)
	}
	return path, nil
}

func writeSummaryCSV(f *os.File, s services.Summary) error {
	cw := csv.NewWriter(f)

	records := [][]string{
		{"section", "label", "income", "expense"},
		{"totals", "all", formatAmount(s.IncomeTotal), formatAmount(s.ExpenseTotal)},
	}
	for _, row := range s.Monthly {
		records = append(records, []string{"monthly", row.Label, formatAmount(row.IncomeTotal), formatAmount(row.ExpenseTotal)})
	}
	for _, share := range s.Categories {
		records = append(records, []string{"category", share.Category, "", formatAmount(share.Total)})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
