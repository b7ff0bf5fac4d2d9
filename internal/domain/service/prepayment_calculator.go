package service

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/valueobject"
	"github.com/harborbank/servicing/pkg/money"
)

// PrepaymentInput is the scalar state a prepayment recalculation runs on.
// It is deliberately independent of the LoanRecord aggregate so scenario
// quoting can run against hypothetical numbers.
type PrepaymentInput struct {
	RemainingBalance    decimal.Decimal
	PeriodicPayment     decimal.Decimal
	AnnualRate          decimal.Decimal // percent per year
	RemainingTermMonths int
	PrepaymentAmount    decimal.Decimal
	PrepaymentDate      time.Time
	Type                valueobject.PrepaymentType
}

// PrepaymentCalculator recomputes term or payment after an extra principal
// payment. Pure computation over its inputs; deterministic, no I/O.
type PrepaymentCalculator struct{}

// NewPrepaymentCalculator creates the calculator.
func NewPrepaymentCalculator() *PrepaymentCalculator {
	return &PrepaymentCalculator{}
}

// Recalculate applies the prepayment and solves for the changed quantity.
//
// REDUCE_TERM holds the payment constant and solves the amortization identity
// for the number of periods:
//
//	newTerm = ceil( -ln(1 - r*B/p) / ln(1+r) )
//
// If r*B/p >= 1 the payment does not cover interest on the reduced balance
// and no finite term exists; that fails with ErrUnpayableAtCurrentPayment
// instead of producing NaN. REDUCE_PAYMENT holds the term constant and
// re-derives the level payment over the reduced balance.
func (c *PrepaymentCalculator) Recalculate(in PrepaymentInput) (model.PrepaymentResult, error) {
	if in.RemainingBalance.LessThanOrEqual(decimal.Zero) {
		return model.PrepaymentResult{}, fmt.Errorf("%w: remaining balance must be positive, got %s",
			model.ErrInvalidLoanTerms, in.RemainingBalance)
	}
	if in.PeriodicPayment.LessThanOrEqual(decimal.Zero) {
		return model.PrepaymentResult{}, fmt.Errorf("%w: periodic payment must be positive, got %s",
			model.ErrInvalidLoanTerms, in.PeriodicPayment)
	}
	if in.RemainingTermMonths <= 0 || in.RemainingTermMonths > model.MaxTermMonths {
		return model.PrepaymentResult{}, fmt.Errorf("%w: remaining term %d out of range",
			model.ErrInvalidLoanTerms, in.RemainingTermMonths)
	}
	if in.AnnualRate.IsNegative() {
		return model.PrepaymentResult{}, fmt.Errorf("%w: annual rate must not be negative, got %s",
			model.ErrInvalidLoanTerms, in.AnnualRate)
	}
	if in.PrepaymentAmount.IsNegative() {
		return model.PrepaymentResult{}, fmt.Errorf("%w: prepayment must not be negative, got %s",
			model.ErrInvalidPrepayment, in.PrepaymentAmount)
	}

	newBalance := in.RemainingBalance.Sub(in.PrepaymentAmount)
	if newBalance.IsNegative() {
		return model.PrepaymentResult{}, fmt.Errorf("%w: prepayment %s exceeds remaining balance %s",
			model.ErrInvalidPrepayment, in.PrepaymentAmount, in.RemainingBalance)
	}

	prepayType := in.Type
	if prepayType.IsZero() {
		prepayType = valueobject.PrepaymentReduceTerm
	}

	r := in.AnnualRate.Div(decimal.NewFromInt(12)).Div(decimal.NewFromInt(100))
	originalPayment := money.RoundCurrency(in.PeriodicPayment)

	// The supplied remaining term and payment can disagree (a quoted term of
	// 240 at a payment that actually retires the balance in 248). Interest
	// comparisons are only meaningful like-for-like, so the original term is
	// re-solved from the same identity the reduce-term branch uses, falling
	// back to the supplied term when no finite solution exists.
	originalTerm := in.RemainingTermMonths
	if solved, err := solveTerm(in.RemainingBalance, originalPayment, r); err == nil && solved > 0 {
		originalTerm = solved
	}
	originalInterest := totalInterest(originalPayment, originalTerm, in.RemainingBalance)

	var newTerm int
	var newPayment decimal.Decimal

	switch {
	case prepayType.Equal(valueobject.PrepaymentReducePayment):
		newTerm = originalTerm
		newPayment = annuityPayment(newBalance, r, originalTerm)
	default:
		newPayment = originalPayment
		var err error
		newTerm, err = solveTerm(newBalance, originalPayment, r)
		if err != nil {
			return model.PrepaymentResult{}, err
		}
	}

	newInterest := totalInterest(newPayment, newTerm, newBalance)

	return model.PrepaymentResult{
		PrepaymentAmount:      money.RoundCurrency(in.PrepaymentAmount),
		PrepaymentDate:        in.PrepaymentDate,
		PrepaymentType:        prepayType.String(),
		OriginalTerm:          originalTerm,
		NewTerm:               newTerm,
		TermReduction:         originalTerm - newTerm,
		OriginalPayment:       originalPayment,
		NewPayment:            newPayment,
		PaymentReduction:      originalPayment.Sub(newPayment),
		OriginalTotalInterest: originalInterest,
		NewTotalInterest:      newInterest,
		InterestSavings:       originalInterest.Sub(newInterest),
	}, nil
}

// solveTerm returns the number of periods needed to retire balance at the
// given payment and periodic rate.
func solveTerm(balance, payment, r decimal.Decimal) (int, error) {
	if balance.IsZero() {
		return 0, nil
	}
	if r.IsZero() {
		return int(balance.Div(payment).Ceil().IntPart()), nil
	}

	ratio := r.Mul(balance).Div(payment)
	if ratio.GreaterThanOrEqual(one) {
		return 0, fmt.Errorf("%w: payment %s does not cover interest on balance %s",
			model.ErrUnpayableAtCurrentPayment, payment, balance)
	}

	// The logarithm has no exact decimal form; float64 is safe here because
	// ratio < 1 is already guaranteed and the result is a period count, not
	// a monetary amount. The epsilon keeps an exact annuity payment from
	// ceiling up to one spurious extra period.
	ratioF, _ := ratio.Float64()
	rF, _ := r.Float64()
	periods := -math.Log(1-ratioF) / math.Log(1+rF)
	return int(math.Ceil(periods - 1e-9)), nil
}

// annuityPayment computes the currency-rounded level payment for a balance
// over a fixed number of periods.
func annuityPayment(balance, r decimal.Decimal, periods int) decimal.Decimal {
	n := decimal.NewFromInt(int64(periods))
	if r.IsZero() {
		return money.RoundCurrency(balance.Div(n))
	}
	factor := one.Add(r).Pow(n)
	return money.RoundCurrency(balance.Mul(r).Mul(factor).Div(factor.Sub(one)))
}

// totalInterest is payment*term - principal at currency precision, floored
// at zero for degenerate inputs.
func totalInterest(payment decimal.Decimal, term int, principal decimal.Decimal) decimal.Decimal {
	total := payment.Mul(decimal.NewFromInt(int64(term))).Sub(principal)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return money.RoundCurrency(total)
}
