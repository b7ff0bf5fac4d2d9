package money

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundTo_HalfToEven(t *testing.T) {
	tests := []struct {
		in     string
		digits int32
		want   string
	}{
		{"2.125", 2, "2.12"},
		{"2.135", 2, "2.14"},
		{"2.145", 2, "2.14"},
		{"-2.125", 2, "-2.12"},
		{"0.5", 0, "0"},
		{"1.5", 0, "2"},
		{"2.5", 0, "2"},
		{"0.12345", 4, "0.1234"},
		{"0.123456789", 6, "0.123457"},
	}
	for _, tt := range tests {
		d, _ := decimal.NewFromString(tt.in)
		got := RoundTo(d, tt.digits)
		want, _ := decimal.NewFromString(tt.want)
		if !got.Equal(want) {
			t.Errorf("RoundTo(%s, %d) = %s, want %s", tt.in, tt.digits, got, tt.want)
		}
	}
}

func TestRoundCurrency(t *testing.T) {
	d, _ := decimal.NewFromString("1530.00499")
	if got := RoundCurrency(d); got.String() != "1530" {
		t.Errorf("RoundCurrency(1530.00499) = %s, want 1530", got)
	}
	d, _ = decimal.NewFromString("0.005")
	if got := RoundCurrency(d); got.String() != "0" {
		t.Errorf("RoundCurrency(0.005) = %s, want 0 (half to even)", got)
	}
	d, _ = decimal.NewFromString("0.015")
	if got := RoundCurrency(d); got.String() != "0.02" {
		t.Errorf("RoundCurrency(0.015) = %s, want 0.02 (half to even)", got)
	}
}

func TestRoundRate(t *testing.T) {
	d, _ := decimal.NewFromString("0.0037512")
	if got := RoundRate(d); got.String() != "0.0038" {
		t.Errorf("RoundRate(0.0037512) = %s, want 0.0038", got)
	}
}

func TestParseAmount_Valid(t *testing.T) {
	for _, s := range []string{"0", "100", "-50.5", "200000.00", "0.01"} {
		if _, err := ParseAmount(s); err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", s, err)
		}
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "NaN", "Inf", "-Inf", "12..3", "1,000"} {
		_, err := ParseAmount(s)
		if err == nil {
			t.Errorf("ParseAmount(%q) expected error, got nil", s)
			continue
		}
		if !errors.Is(err, ErrInvalidNumericInput) {
			t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidNumericInput", s, err)
		}
	}
}

func TestFromFloat_NonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := FromFloat(f)
		if !errors.Is(err, ErrInvalidNumericInput) {
			t.Errorf("FromFloat(%v) error = %v, want ErrInvalidNumericInput", f, err)
		}
	}
}

func TestFromFloat_Finite(t *testing.T) {
	d, err := FromFloat(304.22)
	if err != nil {
		t.Fatalf("FromFloat(304.22) unexpected error: %v", err)
	}
	want, _ := decimal.NewFromString("304.22")
	if !d.Equal(want) {
		t.Errorf("FromFloat(304.22) = %s, want 304.22", d)
	}
}
