package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"

	"github.com/harborbank/servicing/internal/domain/valueobject"
	"github.com/harborbank/servicing/pkg/money"
)

// MaxTermMonths bounds schedule length so a bad input cannot request an
// effectively unbounded computation.
const MaxTermMonths = 600

// Balloon schedules a large final payment at a given payment number, before
// the loan would otherwise self-amortize to zero.
type Balloon struct {
	Amount        decimal.Decimal
	PaymentNumber int
}

// ---------------------------------------------------------------------------
// LoanTerms – immutable value object
// ---------------------------------------------------------------------------

// LoanTerms is the immutable parameter set of a loan. Modifications produce a
// new value via the With* methods; the original is never mutated.
type LoanTerms struct {
	principal        decimal.Decimal
	annualRate       decimal.Decimal // percent per year, 4-digit precision
	termMonths       int
	startDate        time.Time
	firstPaymentDate time.Time
	frequency        valueobject.PaymentFrequency
	loanType         valueobject.LoanType
	dayCount         valueobject.DayCountConvention
	balloon          *Balloon
}

// NewLoanTerms validates and constructs a LoanTerms value. Zero-valued
// frequency, loan type and day count default to MONTHLY, AMORTIZED and
// THIRTY_360. A zero firstPaymentDate defaults to one period after startDate.
func NewLoanTerms(
	principal decimal.Decimal,
	annualRate decimal.Decimal,
	termMonths int,
	startDate time.Time,
	firstPaymentDate time.Time,
	frequency valueobject.PaymentFrequency,
	loanType valueobject.LoanType,
	dayCount valueobject.DayCountConvention,
	balloon *Balloon,
) (LoanTerms, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return LoanTerms{}, fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidLoanTerms, principal)
	}
	if annualRate.IsNegative() {
		return LoanTerms{}, fmt.Errorf("%w: annual rate must not be negative, got %s", ErrInvalidLoanTerms, annualRate)
	}
	if termMonths <= 0 {
		return LoanTerms{}, fmt.Errorf("%w: term months must be positive, got %d", ErrInvalidLoanTerms, termMonths)
	}
	if termMonths > MaxTermMonths {
		return LoanTerms{}, fmt.Errorf("%w: term months %d exceeds maximum %d", ErrInvalidLoanTerms, termMonths, MaxTermMonths)
	}
	if frequency.IsZero() {
		frequency = valueobject.FrequencyMonthly
	}
	if loanType.IsZero() {
		loanType = valueobject.LoanTypeAmortized
	}
	if dayCount.IsZero() {
		dayCount = valueobject.DayCountThirty360
	}
	if balloon != nil {
		if balloon.Amount.LessThanOrEqual(decimal.Zero) {
			return LoanTerms{}, fmt.Errorf("%w: balloon amount must be positive, got %s", ErrInvalidLoanTerms, balloon.Amount)
		}
		if n := frequency.PeriodsForTerm(termMonths); balloon.PaymentNumber < 1 || balloon.PaymentNumber > n {
			return LoanTerms{}, fmt.Errorf("%w: balloon payment number %d outside schedule of %d periods",
				ErrInvalidLoanTerms, balloon.PaymentNumber, n)
		}
		b := Balloon{Amount: money.RoundCurrency(balloon.Amount), PaymentNumber: balloon.PaymentNumber}
		balloon = &b
	}
	if firstPaymentDate.IsZero() {
		firstPaymentDate = frequency.NextDate(startDate, 1)
	}

	return LoanTerms{
		principal:        money.RoundCurrency(principal),
		annualRate:       money.RoundRate(annualRate),
		termMonths:       termMonths,
		startDate:        startDate,
		firstPaymentDate: firstPaymentDate,
		frequency:        frequency,
		loanType:         loanType,
		dayCount:         dayCount,
		balloon:          balloon,
	}, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (t LoanTerms) Principal() decimal.Decimal                  { return t.principal }
func (t LoanTerms) AnnualRate() decimal.Decimal                 { return t.annualRate }
func (t LoanTerms) TermMonths() int                             { return t.termMonths }
func (t LoanTerms) StartDate() time.Time                        { return t.startDate }
func (t LoanTerms) FirstPaymentDate() time.Time                 { return t.firstPaymentDate }
func (t LoanTerms) Frequency() valueobject.PaymentFrequency     { return t.frequency }
func (t LoanTerms) LoanType() valueobject.LoanType              { return t.loanType }
func (t LoanTerms) DayCount() valueobject.DayCountConvention    { return t.dayCount }

// Balloon returns the balloon details and whether one is scheduled.
func (t LoanTerms) Balloon() (Balloon, bool) {
	if t.balloon == nil {
		return Balloon{}, false
	}
	return *t.balloon, true
}

// Periods returns the number of scheduled payments implied by the term and
// frequency.
func (t LoanTerms) Periods() int {
	return t.frequency.PeriodsForTerm(t.termMonths)
}

// PeriodicRate returns the per-period interest rate as a decimal fraction
// (annual percent / periods per year / 100).
func (t LoanTerms) PeriodicRate() decimal.Decimal {
	return t.annualRate.
		Div(decimal.NewFromInt(int64(t.frequency.PeriodsPerYear()))).
		Div(decimal.NewFromInt(100))
}

// ---------------------------------------------------------------------------
// Copy-on-write modifiers
// ---------------------------------------------------------------------------

// WithPrincipal returns a copy of the terms with a new principal.
func (t LoanTerms) WithPrincipal(principal decimal.Decimal) (LoanTerms, error) {
	return NewLoanTerms(principal, t.annualRate, t.termMonths, t.startDate,
		t.firstPaymentDate, t.frequency, t.loanType, t.dayCount, t.balloon)
}

// WithAnnualRate returns a copy of the terms with a new annual rate.
func (t LoanTerms) WithAnnualRate(rate decimal.Decimal) (LoanTerms, error) {
	return NewLoanTerms(t.principal, rate, t.termMonths, t.startDate,
		t.firstPaymentDate, t.frequency, t.loanType, t.dayCount, t.balloon)
}

// WithTermMonths returns a copy of the terms with a new term.
func (t LoanTerms) WithTermMonths(termMonths int) (LoanTerms, error) {
	return NewLoanTerms(t.principal, t.annualRate, termMonths, t.startDate,
		t.firstPaymentDate, t.frequency, t.loanType, t.dayCount, t.balloon)
}

// CanonicalString renders every schedule-affecting parameter in a fixed
// order. Two terms with equal canonical strings produce identical schedules,
// so the string is the basis of the calculation-cache fingerprint.
func (t LoanTerms) CanonicalString() string {
	var b strings.Builder
	b.WriteString(t.principal.String())
	b.WriteByte('|')
	b.WriteString(t.annualRate.String())
	b.WriteByte('|')
	fmt.Fprintf(&b, "%d", t.termMonths)
	b.WriteByte('|')
	b.WriteString(t.startDate.UTC().Format(time.RFC3339))
	b.WriteByte('|')
	b.WriteString(t.firstPaymentDate.UTC().Format(time.RFC3339))
	b.WriteByte('|')
	b.WriteString(t.frequency.String())
	b.WriteByte('|')
	b.WriteString(t.loanType.String())
	b.WriteByte('|')
	b.WriteString(t.dayCount.String())
	if t.balloon != nil {
		fmt.Fprintf(&b, "|balloon:%s@%d", t.balloon.Amount.String(), t.balloon.PaymentNumber)
	}
	return b.String()
}

// Fingerprint hashes the canonical form into a short stable key. Cache
// entries and calculation events carry it so a terms change is detectable
// without comparing every field.
func (t LoanTerms) Fingerprint() string {
	return strconv.FormatUint(xxhash.Sum64String(t.CanonicalString()), 16)
}
