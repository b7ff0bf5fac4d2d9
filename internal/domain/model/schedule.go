package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is an immutable value object representing one period in a
// payment schedule. BalloonPayment is non-zero only on the entry that carries
// a scheduled balloon.
type ScheduleEntry struct {
	PaymentNumber       int
	PaymentDate         time.Time
	ScheduledPayment    decimal.Decimal
	PrincipalPayment    decimal.Decimal
	InterestPayment     decimal.Decimal
	TotalPayment        decimal.Decimal
	RemainingBalance    decimal.Decimal
	CumulativeInterest  decimal.Decimal
	CumulativePrincipal decimal.Decimal
	BalloonPayment      decimal.Decimal
}

// PaymentSchedule is the derived aggregate of a full schedule computation.
// It is regenerated whenever the underlying LoanTerms change, never mutated
// in place.
type PaymentSchedule struct {
	Entries          []ScheduleEntry
	TotalPayments    decimal.Decimal
	TotalInterest    decimal.Decimal
	TotalPrincipal   decimal.Decimal
	PeriodicPayment  decimal.Decimal
	FirstPaymentDate time.Time
	LastPaymentDate  time.Time
	TermMonths       int
}

// Len returns the number of schedule entries.
func (s PaymentSchedule) Len() int { return len(s.Entries) }

// FinalBalance returns the remaining balance after the last entry, or zero
// for an empty schedule.
func (s PaymentSchedule) FinalBalance() decimal.Decimal {
	if len(s.Entries) == 0 {
		return decimal.Zero
	}
	return s.Entries[len(s.Entries)-1].RemainingBalance
}
