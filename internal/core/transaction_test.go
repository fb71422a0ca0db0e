package core

import (
	"testing"
)

func TestTransactionEqual(t *testing.T) {
	base := Transaction{
		Date:          "2025-03-01",
		Type:          Expense,
		Currency:      "CNY",
		Amount:        42.5,
		Category:      "Food",
		PaymentMethod: "Card",
	}

	if !base.Equal(base) {
		t.Fatal("transaction must equal itself")
	}

	other := base
	other.Description = "lunch"
	if base.Equal(other) {
		t.Fatal("description participates in structural equality")
	}

	other = base
	other.Amount = 42.51
	if base.Equal(other) {
		t.Fatal("amount participates in structural equality")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:          "2025-03-01",
		Type:          Income,
		Currency:      "USD",
		Amount:        100,
		Category:      "Salary",
		PaymentMethod: "Bank",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Transaction)
		want error
	}{
		{"bad date", func(tr *Transaction) { tr.Date = "03/01/2025" }, ErrInvalidDate},
		{"bad type", func(tr *Transaction) { tr.Type = "Transfer" }, ErrInvalidType},
		{"negative amount", func(tr *Transaction) { tr.Amount = -1 }, ErrInvalidAmount},
		{"empty currency", func(tr *Transaction) { tr.Currency = " " }, ErrEmptyCurrency},
		{"empty category", func(tr *Transaction) { tr.Category = "" }, ErrEmptyCategory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := good
			tc.mut(&tr)
			if err := tr.Validate(); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.34", 12.34, true},
		{" 7 ", 7, true},
		{"0", 0, true},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseAmount(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseAmount(%q) expected error", tc.in)
		}
	}
}
