package valueobject

import (
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// PaymentFrequency – immutable value object
// ---------------------------------------------------------------------------

// PaymentFrequency determines how often scheduled payments fall due and how
// the due date advances from one period to the next.
type PaymentFrequency struct {
	value string
}

const (
	frequencyMonthly  = "MONTHLY"
	frequencyBiweekly = "BIWEEKLY"
	frequencyWeekly   = "WEEKLY"
)

var (
	FrequencyMonthly  = PaymentFrequency{value: frequencyMonthly}
	FrequencyBiweekly = PaymentFrequency{value: frequencyBiweekly}
	FrequencyWeekly   = PaymentFrequency{value: frequencyWeekly}
)

var validFrequencies = map[string]PaymentFrequency{
	frequencyMonthly:  FrequencyMonthly,
	frequencyBiweekly: FrequencyBiweekly,
	frequencyWeekly:   FrequencyWeekly,
}

// NewPaymentFrequency creates a PaymentFrequency from a raw string.
func NewPaymentFrequency(s string) (PaymentFrequency, error) {
	v, ok := validFrequencies[s]
	if !ok {
		return PaymentFrequency{}, fmt.Errorf("invalid payment frequency: %q", s)
	}
	return v, nil
}

// String returns the string representation of the frequency.
func (f PaymentFrequency) String() string { return f.value }

// IsZero returns true if the frequency has not been initialised.
func (f PaymentFrequency) IsZero() bool { return f.value == "" }

// Equal returns true when both frequencies carry the same value.
func (f PaymentFrequency) Equal(other PaymentFrequency) bool { return f.value == other.value }

// PeriodsPerYear returns the number of scheduled payments per year.
func (f PaymentFrequency) PeriodsPerYear() int {
	switch f.value {
	case frequencyBiweekly:
		return 26
	case frequencyWeekly:
		return 52
	default:
		return 12
	}
}

// PeriodsForTerm converts a term expressed in months into a number of
// payment periods for this frequency.
func (f PaymentFrequency) PeriodsForTerm(termMonths int) int {
	switch f.value {
	case frequencyBiweekly:
		return termMonths * 26 / 12
	case frequencyWeekly:
		return termMonths * 52 / 12
	default:
		return termMonths
	}
}

// NextDate advances a due date by one period. Monthly schedules keep the
// day-of-month of the anchor date, clamping into shorter months (a schedule
// anchored on the 31st falls due on the 30th of April and the 28th/29th of
// February). Biweekly and weekly schedules use fixed 14- and 7-day offsets.
func (f PaymentFrequency) NextDate(anchor time.Time, period int) time.Time {
	switch f.value {
	case frequencyBiweekly:
		return anchor.AddDate(0, 0, 14*period)
	case frequencyWeekly:
		return anchor.AddDate(0, 0, 7*period)
	default:
		return addMonthsClamped(anchor, period)
	}
}

// addMonthsClamped adds months without the normalisation overflow of
// time.AddDate (Jan 31 + 1 month = Feb 28/29, not Mar 2/3).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	shifted := first.AddDate(0, months, 0)
	if last := daysInMonth(shifted.Year(), shifted.Month()); d > last {
		d = last
	}
	return time.Date(shifted.Year(), shifted.Month(), d,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
