package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentAllocation is the result of splitting one received payment across
// the servicing buckets. Every component is independently rounded to currency
// precision and the components always sum exactly to Total.
type PaymentAllocation struct {
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Fees      decimal.Decimal
	Penalties decimal.Decimal
	Escrow    decimal.Decimal
	LateFees  decimal.Decimal
	OtherFees decimal.Decimal
	Total     decimal.Decimal
}

// Sum returns the sum of all allocation components (everything except Total).
func (a PaymentAllocation) Sum() decimal.Decimal {
	return a.Principal.
		Add(a.Interest).
		Add(a.Fees).
		Add(a.Penalties).
		Add(a.Escrow).
		Add(a.LateFees).
		Add(a.OtherFees)
}

// PrepaymentResult reports the effect of an extra principal payment, computed
// on demand and not persisted by this core.
type PrepaymentResult struct {
	PrepaymentAmount      decimal.Decimal
	PrepaymentDate        time.Time
	PrepaymentType        string
	OriginalTerm          int
	NewTerm               int
	TermReduction         int
	OriginalPayment       decimal.Decimal
	NewPayment            decimal.Decimal
	PaymentReduction      decimal.Decimal
	OriginalTotalInterest decimal.Decimal
	NewTotalInterest      decimal.Decimal
	InterestSavings       decimal.Decimal
}
