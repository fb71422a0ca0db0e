// Package csvimport parses transaction CSV files with a fixed six-column
// schema. The header must match exactly; anything else aborts the import
// before any row is considered.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"finanger/internal/core"
)

// Header is the only accepted header row, column names and order exact.
var Header = []string{
	"Transaction Date",
	"Transaction Type",
	"Currency",
	"Amount",
	"Category",
	"Payment Method",
}

// ErrHeaderMismatch aborts the whole import: a renamed or reordered column
// means the file is not in the expected schema and no row can be trusted.
var ErrHeaderMismatch = errors.New("csv header mismatch")

// Result reports what survived an import pass and what was dropped.
type Result struct {
	Imported          []core.Transaction
	SkippedMalformed  int // wrong field count or unparseable amount
	SkippedDuplicates int // structural duplicate of disk or an earlier row
}

// Parse reads the CSV and returns the rows that survive validation and
// deduplication. Dedup is cumulative: a row is dropped if it structurally
// equals anything in existing or any earlier surviving row of this same
// pass, which makes importing the same file twice a no-op.
func Parse(r io.Reader, existing []core.Transaction) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read csv header: %w", err)
	}
	if !headerMatches(header) {
		return Result{}, fmt.Errorf("%w: got %q", ErrHeaderMismatch, strings.Join(header, ","))
	}

	var res Result
	seen := append([]core.Transaction(nil), existing...)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read csv row: %w", err)
		}
		if len(record) != len(Header) {
			res.SkippedMalformed++
			continue
		}

		amount, err := core.ParseAmount(record[3])
		if err != nil {
			res.SkippedMalformed++
			continue
		}

		tx := core.Transaction{
			Date:          strings.TrimSpace(record[0]),
			Type:          core.TransactionType(strings.TrimSpace(record[1])),
			Currency:      strings.TrimSpace(record[2]),
			Amount:        amount,
			Category:      strings.TrimSpace(record[4]),
			PaymentMethod: strings.TrimSpace(record[5]),
		}

		if containsEqual(seen, tx) {
			res.SkippedDuplicates++
			continue
		}
		seen = append(seen, tx)
		res.Imported = append(res.Imported, tx)
	}
	return res, nil
}

func headerMatches(got []string) bool {
	if len(got) != len(Header) {
		return false
	}
	for i, col := range Header {
		if strings.TrimSpace(got[i]) != col {
			return false
		}
	}
	return true
}

func containsEqual(txs []core.Transaction, tx core.Transaction) bool {
	for _, existing := range txs {
		if existing.Equal(tx) {
			return true
		}
	}
	return false
}
