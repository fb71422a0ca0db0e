package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used everywhere a date is stored as text.
const DateLayout = "2006-01-02"

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

type TransactionType string

// IsValid returns true for the two supported transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

var (
	ErrInvalidDate     = errors.New("invalid transaction date")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCurrency   = errors.New("empty currency")
	ErrEmptyCategory   = errors.New("empty category")
)

// Transaction is a value type. It carries no assigned identifier: two
// transactions are the same record iff every field matches. That structural
// equality drives duplicate detection on insert and the match-and-remove
// semantics of update and delete.
type Transaction struct {
	Date          string          `json:"transactionDate"`
	Type          TransactionType `json:"transactionType"`
	Currency      string          `json:"currency"`
	Amount        float64         `json:"amount"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
	Description   string          `json:"description,omitempty"`
}

// Equal reports structural equality across every field, including the
// optional description.
func (t Transaction) Equal(other Transaction) bool {
	return t == other
}

// ParsedDate parses the stored date text.
func (t Transaction) ParsedDate() (time.Time, error) {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func (t Transaction) Validate() error {
	if _, err := t.ParsedDate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if t.Amount < 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Currency) == "" {
		return ErrEmptyCurrency
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// ParseAmount converts an amount field to a non-negative float64.
// Rejects negatives, NaN, infinities and anything strconv cannot parse.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
