package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/pkg/money"
)

// ResidualTarget selects which allocation component absorbs a one-cent
// rounding residual. Servicing conventions differ between shops, so the
// choice is a policy knob rather than hard-coded.
type ResidualTarget string

const (
	ResidualToPrincipal ResidualTarget = "PRINCIPAL"
	ResidualToInterest  ResidualTarget = "INTEREST"
)

// AllocationOptions carries the caller-supplied amounts due in each servicing
// bucket, plus policy knobs. All amounts are optional; zero values allocate
// nothing to that bucket.
type AllocationOptions struct {
	Fees            decimal.Decimal
	Penalties       decimal.Decimal
	Escrow          decimal.Decimal
	LateFees        decimal.Decimal
	OtherFees       decimal.Decimal
	MinimumInterest decimal.Decimal
	ResidualTarget  ResidualTarget
}

// AllocationEngine splits one received payment across interest, fees,
// penalties, escrow and principal. Pure and stateless; safe for concurrent
// use.
type AllocationEngine struct{}

// NewAllocationEngine creates the engine.
func NewAllocationEngine() *AllocationEngine {
	return &AllocationEngine{}
}

// AllocatePayment applies the fixed servicing waterfall:
//
//	interest -> fees -> penalties -> escrow -> late fees -> other fees -> principal
//
// Interest due is balance * periodicRate, floored at MinimumInterest. Each
// bucket takes at most what remains of the payment. Principal receives the
// remainder, clamped to [0, currentBalance]; an overpayment beyond the full
// balance stays unallocated (payoff or refund is the caller's call).
//
// Every component is independently rounded to currency precision, and any
// residual cent from that rounding is reconciled into the configured target
// component so the components always sum exactly to Total.
func (e *AllocationEngine) AllocatePayment(
	paymentAmount decimal.Decimal,
	currentBalance decimal.Decimal,
	periodicRate decimal.Decimal,
	opts AllocationOptions,
) (model.PaymentAllocation, error) {
	if paymentAmount.IsNegative() {
		return model.PaymentAllocation{}, fmt.Errorf("payment amount must not be negative, got %s", paymentAmount)
	}
	if currentBalance.IsNegative() {
		return model.PaymentAllocation{}, fmt.Errorf("current balance must not be negative, got %s", currentBalance)
	}
	if periodicRate.IsNegative() {
		return model.PaymentAllocation{}, fmt.Errorf("periodic rate must not be negative, got %s", periodicRate)
	}

	total := money.RoundCurrency(paymentAmount)
	remaining := total

	interestDue := money.RoundCurrency(currentBalance.Mul(periodicRate))
	if floor := money.RoundCurrency(opts.MinimumInterest); floor.GreaterThan(interestDue) {
		interestDue = floor
	}
	interest := decimal.Min(remaining, interestDue)
	remaining = remaining.Sub(interest)

	take := func(due decimal.Decimal) decimal.Decimal {
		part := decimal.Min(remaining, money.RoundCurrency(due))
		if part.IsNegative() {
			part = decimal.Zero
		}
		remaining = remaining.Sub(part)
		return part
	}
	fees := take(opts.Fees)
	penalties := take(opts.Penalties)
	escrow := take(opts.Escrow)
	lateFees := take(opts.LateFees)
	otherFees := take(opts.OtherFees)

	principal := money.RoundCurrency(remaining)
	if principal.GreaterThan(currentBalance) {
		principal = currentBalance
	}
	if principal.IsNegative() {
		principal = decimal.Zero
	}

	alloc := model.PaymentAllocation{
		Principal: principal,
		Interest:  interest,
		Fees:      fees,
		Penalties: penalties,
		Escrow:    escrow,
		LateFees:  lateFees,
		OtherFees: otherFees,
	}

	// Reconcile the rounding residual into the target component. A genuine
	// rounding residual is at most one smallest currency unit; anything
	// larger exists because principal was clamped at the full balance, which
	// is a true overpayment and stays unallocated.
	if residual := total.Sub(alloc.Sum()); !residual.IsZero() {
		cent := decimal.New(1, -money.CurrencyPrecision)
		switch opts.ResidualTarget {
		case ResidualToInterest:
			if adjusted := alloc.Interest.Add(residual); residual.Abs().LessThanOrEqual(cent) && !adjusted.IsNegative() {
				alloc.Interest = adjusted
			}
		default:
			if adjusted := alloc.Principal.Add(residual); !adjusted.IsNegative() && !adjusted.GreaterThan(currentBalance) {
				alloc.Principal = adjusted
			}
		}
	}
	alloc.Total = alloc.Sum()

	if err := checkAllocation(alloc); err != nil {
		return model.PaymentAllocation{}, err
	}
	return alloc, nil
}

// ValidateAllocation returns the discrepancy between an expected total and
// the sum of an allocation's components. Allocations produced by this engine
// validate to exactly zero against the payment amount, except for true
// overpayments, where the positive residual is the refundable excess.
func (e *AllocationEngine) ValidateAllocation(alloc model.PaymentAllocation, expectedTotal decimal.Decimal) decimal.Decimal {
	return money.RoundCurrency(expectedTotal).Sub(alloc.Sum())
}

// checkAllocation enforces the internal invariant: non-negative components
// that sum exactly to Total. A violation is a logic bug, never user input.
func checkAllocation(alloc model.PaymentAllocation) error {
	for _, part := range []decimal.Decimal{
		alloc.Principal, alloc.Interest, alloc.Fees, alloc.Penalties,
		alloc.Escrow, alloc.LateFees, alloc.OtherFees,
	} {
		if part.IsNegative() {
			return fmt.Errorf("%w: negative component %s", model.ErrAllocationReconciliation, part)
		}
	}
	if !alloc.Sum().Equal(alloc.Total) {
		return fmt.Errorf("%w: components sum to %s, total is %s",
			model.ErrAllocationReconciliation, alloc.Sum(), alloc.Total)
	}
	return nil
}
