package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewCurrency_Valid(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "GBP", "JPY"} {
		c, err := NewCurrency(code)
		if err != nil {
			t.Errorf("NewCurrency(%q) unexpected error: %v", code, err)
		}
		if c.Code() != code {
			t.Errorf("NewCurrency(%q).Code() = %q, want %q", code, c.Code(), code)
		}
	}
}

func TestNewCurrency_Invalid(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"lowercase", "usd"},
		{"too short", "US"},
		{"too long", "USDD"},
		{"digits", "US1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCurrency(tt.code); err == nil {
				t.Errorf("NewCurrency(%q) expected error, got nil", tt.code)
			}
		})
	}
}

func TestNewFromString(t *testing.T) {
	m, err := NewFromString("1530.005", "USD")
	if err != nil {
		t.Fatalf("NewFromString unexpected error: %v", err)
	}
	if got := m.Round().String(); got != "1530.00 USD" {
		t.Errorf("Round().String() = %q, want %q", got, "1530.00 USD")
	}

	if _, err := NewFromString("not-a-number", "USD"); err == nil {
		t.Error("NewFromString with invalid amount expected error, got nil")
	}
	if _, err := NewFromString("100", "bad"); err == nil {
		t.Error("NewFromString with invalid currency expected error, got nil")
	}
}

func TestAddSubtract_CurrencyMismatch(t *testing.T) {
	usd := New(decimal.NewFromInt(100), USD)
	eur := New(decimal.NewFromInt(50), EUR)

	if _, err := usd.Add(eur); err == nil {
		t.Error("Add with mismatched currencies expected error, got nil")
	}
	if _, err := usd.Subtract(eur); err == nil {
		t.Error("Subtract with mismatched currencies expected error, got nil")
	}
}

func TestArithmetic(t *testing.T) {
	a := New(decimal.NewFromInt(100), USD)
	b := New(decimal.NewFromInt(40), USD)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add unexpected error: %v", err)
	}
	if !sum.Amount().Equal(decimal.NewFromInt(140)) {
		t.Errorf("100 + 40 = %s, want 140", sum.Amount())
	}

	diff, err := a.Subtract(b)
	if err != nil {
		t.Fatalf("Subtract unexpected error: %v", err)
	}
	if !diff.Amount().Equal(decimal.NewFromInt(60)) {
		t.Errorf("100 - 40 = %s, want 60", diff.Amount())
	}

	if got := b.Negate().Amount(); !got.Equal(decimal.NewFromInt(-40)) {
		t.Errorf("Negate(40) = %s, want -40", got)
	}
	if got := b.Negate().Abs().Amount(); !got.Equal(decimal.NewFromInt(40)) {
		t.Errorf("Abs(-40) = %s, want 40", got)
	}
}

func TestZeroAndPredicates(t *testing.T) {
	z := Zero(USD)
	if !z.IsZero() {
		t.Error("Zero(USD).IsZero() = false, want true")
	}
	if z.IsPositive() || z.IsNegative() {
		t.Error("Zero should be neither positive nor negative")
	}
	if !New(decimal.NewFromInt(1), USD).IsPositive() {
		t.Error("1 USD should be positive")
	}
	if !New(decimal.NewFromInt(-1), USD).IsNegative() {
		t.Error("-1 USD should be negative")
	}
}
