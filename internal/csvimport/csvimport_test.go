package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanger/internal/core"
)

const header = "Transaction Date,Transaction Type,Currency,Amount,Category,Payment Method\n"

func TestParseValidRows(t *testing.T) {
	in := header +
		"2025-03-01,Expense,CNY,58.90,Food,WeChat\n" +
		"2025-03-02,Income,CNY,9000,Salary,Bank\n"

	res, err := Parse(strings.NewReader(in), nil)
	require.NoError(t, err)
	require.Len(t, res.Imported, 2)
	assert.Zero(t, res.SkippedMalformed)
	assert.Zero(t, res.SkippedDuplicates)

	assert.Equal(t, core.Transaction{
		Date:          "2025-03-01",
		Type:          core.Expense,
		Currency:      "CNY",
		Amount:        58.9,
		Category:      "Food",
		PaymentMethod: "WeChat",
	}, res.Imported[0])
}

func TestParseHeaderMismatchAborts(t *testing.T) {
	cases := []string{
		// renamed column
		"Date,Transaction Type,Currency,Amount,Category,Payment Method\n2025-03-01,Expense,CNY,1,Food,Cash\n",
		// reordered columns
		"Transaction Type,Transaction Date,Currency,Amount,Category,Payment Method\n2025-03-01,Expense,CNY,1,Food,Cash\n",
		// wrong case
		"transaction date,Transaction Type,Currency,Amount,Category,Payment Method\n2025-03-01,Expense,CNY,1,Food,Cash\n",
		// missing column
		"Transaction Date,Transaction Type,Currency,Amount,Category\n2025-03-01,Expense,CNY,1,Food\n",
	}
	for _, in := range cases {
		res, err := Parse(strings.NewReader(in), nil)
		assert.ErrorIs(t, err, ErrHeaderMismatch)
		assert.Empty(t, res.Imported)
	}
}

func TestParseSkipsMalformedRows(t *testing.T) {
	in := header +
		"2025-03-01,Expense,CNY,58.90,Food\n" + // 5 fields
		"2025-03-01,Expense,CNY,58.90,Food,WeChat,extra\n" + // 7 fields
		"2025-03-02,Expense,CNY,not-a-number,Food,WeChat\n" + // bad amount
		"2025-03-03,Expense,CNY,12,Food,WeChat\n"

	res, err := Parse(strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.SkippedMalformed)
	require.Len(t, res.Imported, 1)
	assert.Equal(t, "2025-03-03", res.Imported[0].Date)
}

func TestParseDedupAgainstExistingAndWithinFile(t *testing.T) {
	existing := []core.Transaction{{
		Date: "2025-03-01", Type: core.Expense, Currency: "CNY",
		Amount: 58.9, Category: "Food", PaymentMethod: "WeChat",
	}}

	in := header +
		"2025-03-01,Expense,CNY,58.9,Food,WeChat\n" + // dup of disk
		"2025-03-02,Expense,CNY,20,Transport,Card\n" +
		"2025-03-02,Expense,CNY,20,Transport,Card\n" // dup of previous row

	res, err := Parse(strings.NewReader(in), existing)
	require.NoError(t, err)
	assert.Equal(t, 2, res.SkippedDuplicates)
	require.Len(t, res.Imported, 1)
	assert.Equal(t, "Transport", res.Imported[0].Category)
}

func TestParseIsIdempotent(t *testing.T) {
	in := header +
		"2025-03-01,Expense,CNY,58.9,Food,WeChat\n" +
		"2025-03-02,Income,CNY,9000,Salary,Bank\n"

	first, err := Parse(strings.NewReader(in), nil)
	require.NoError(t, err)
	require.Len(t, first.Imported, 2)

	second, err := Parse(strings.NewReader(in), first.Imported)
	require.NoError(t, err)
	assert.Empty(t, second.Imported)
	assert.Equal(t, 2, second.SkippedDuplicates)
}
