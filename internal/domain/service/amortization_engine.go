package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/valueobject"
	"github.com/harborbank/servicing/pkg/money"
)

var one = decimal.NewFromInt(1)

// AmortizationEngine computes level payments and full payment schedules from
// loan terms. It is a pure domain service: no state, safe for concurrent use.
type AmortizationEngine struct{}

// NewAmortizationEngine creates the engine.
func NewAmortizationEngine() *AmortizationEngine {
	return &AmortizationEngine{}
}

// CalculatePayment returns the level periodic payment and the total interest
// paid over the life of the loan, both at currency precision.
//
// The periodic rate is annualRate / periodsPerYear / 100. At zero rate the
// payment is a straight-line split of the principal. Otherwise the standard
// annuity identity applies:
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// When a balloon is scheduled, the payment is solved so the open balance at
// the balloon period equals the balloon amount.
func (e *AmortizationEngine) CalculatePayment(terms model.LoanTerms) (decimal.Decimal, decimal.Decimal, error) {
	if terms.LoanType().Equal(valueobject.LoanTypeSimpleInterest) {
		schedule, err := e.GenerateSchedule(terms)
		if err != nil {
			return decimal.Decimal{}, decimal.Decimal{}, err
		}
		return schedule.PeriodicPayment, schedule.TotalInterest, nil
	}

	payment, err := levelPayment(terms)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}

	n := int64(terms.Periods())
	financed := terms.Principal()
	if balloon, ok := terms.Balloon(); ok {
		// Interest runs on the full principal but only the amortized part is
		// repaid through level payments.
		n = int64(balloon.PaymentNumber)
		financed = financed.Sub(balloon.Amount)
	}

	totalInterest := money.RoundCurrency(payment.Mul(decimal.NewFromInt(n)).Sub(financed))
	return payment, totalInterest, nil
}

// GenerateSchedule computes the full per-period schedule for the given terms.
// The final period's principal absorbs the rounding drift accumulated over
// the schedule so the closing balance is exactly zero; with a balloon, the
// balance is retired by the balloon payment on the last entry.
func (e *AmortizationEngine) GenerateSchedule(terms model.LoanTerms) (model.PaymentSchedule, error) {
	payment, err := levelPayment(terms)
	if err != nil {
		return model.PaymentSchedule{}, err
	}

	periods := terms.Periods()
	balloonPeriod := 0
	var balloonAmount decimal.Decimal
	if balloon, ok := terms.Balloon(); ok {
		periods = balloon.PaymentNumber
		balloonPeriod = balloon.PaymentNumber
		balloonAmount = balloon.Amount
	}

	simple := terms.LoanType().Equal(valueobject.LoanTypeSimpleInterest)
	var levelPrincipal decimal.Decimal
	if simple {
		levelPrincipal = money.RoundCurrency(terms.Principal().Div(decimal.NewFromInt(int64(periods))))
	}

	entries := make([]model.ScheduleEntry, 0, periods)
	balance := terms.Principal()
	cumInterest := decimal.Zero
	cumPrincipal := decimal.Zero
	prevDate := terms.StartDate()

	for period := 1; period <= periods; period++ {
		dueDate := paymentDate(terms, period)
		interest := money.RoundCurrency(balance.Mul(periodRate(terms, prevDate, dueDate)))

		var principalPart decimal.Decimal
		switch {
		case simple:
			principalPart = levelPrincipal
		default:
			principalPart = payment.Sub(interest)
		}
		if principalPart.GreaterThan(balance) {
			principalPart = balance
		}
		if principalPart.IsNegative() {
			principalPart = decimal.Zero
		}

		scheduled := payment
		if simple {
			scheduled = principalPart.Add(interest)
		}

		var balloonPart decimal.Decimal
		if period == periods {
			// Close out exactly: the last regular period absorbs rounding
			// drift, and a balloon period retires the full residual balance.
			if period == balloonPeriod {
				principalPart = balance
				balloonPart = balloonAmount
			} else {
				principalPart = balance
			}
			scheduled = principalPart.Add(interest)
		}

		balance = balance.Sub(principalPart)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		total := principalPart.Add(interest)
		cumInterest = cumInterest.Add(interest)
		cumPrincipal = cumPrincipal.Add(principalPart)

		entries = append(entries, model.ScheduleEntry{
			PaymentNumber:       period,
			PaymentDate:         dueDate,
			ScheduledPayment:    scheduled,
			PrincipalPayment:    principalPart,
			InterestPayment:     interest,
			TotalPayment:        total,
			RemainingBalance:    balance,
			CumulativeInterest:  cumInterest,
			CumulativePrincipal: cumPrincipal,
			BalloonPayment:      balloonPart,
		})

		prevDate = dueDate
	}

	first := entries[0]
	last := entries[len(entries)-1]

	return model.PaymentSchedule{
		Entries:          entries,
		TotalPayments:    money.RoundCurrency(cumInterest.Add(cumPrincipal)),
		TotalInterest:    money.RoundCurrency(cumInterest),
		TotalPrincipal:   money.RoundCurrency(cumPrincipal),
		PeriodicPayment:  payment,
		FirstPaymentDate: first.PaymentDate,
		LastPaymentDate:  last.PaymentDate,
		TermMonths:       terms.TermMonths(),
	}, nil
}

// levelPayment returns the currency-rounded level payment for the terms.
func levelPayment(terms model.LoanTerms) (decimal.Decimal, error) {
	n := int64(terms.Periods())
	r := terms.PeriodicRate()
	principal := terms.Principal()

	balloon, hasBalloon := terms.Balloon()
	if hasBalloon {
		n = int64(balloon.PaymentNumber)
		if balloon.Amount.GreaterThanOrEqual(principal) {
			return decimal.Decimal{}, fmt.Errorf("%w: balloon amount %s must be below principal %s",
				model.ErrInvalidLoanTerms, balloon.Amount, principal)
		}
	}

	if terms.LoanType().Equal(valueobject.LoanTypeSimpleInterest) {
		// No level payment exists for a level-principal loan; callers read
		// per-period amounts off the schedule. Report the first-period
		// outlay as the representative payment.
		levelPrincipal := money.RoundCurrency(principal.Div(decimal.NewFromInt(n)))
		firstInterest := money.RoundCurrency(principal.Mul(r))
		return levelPrincipal.Add(firstInterest), nil
	}

	if r.IsZero() {
		if hasBalloon {
			return money.RoundCurrency(principal.Sub(balloon.Amount).Div(decimal.NewFromInt(n))), nil
		}
		return money.RoundCurrency(principal.Div(decimal.NewFromInt(n))), nil
	}

	// (1+r)^n in decimal; float64 never touches a monetary value.
	factor := one.Add(r).Pow(decimal.NewFromInt(n))

	if hasBalloon {
		// Solve balance(n) == balloon: pmt = (P*(1+r)^n - B) * r / ((1+r)^n - 1).
		numerator := principal.Mul(factor).Sub(balloon.Amount).Mul(r)
		return money.RoundCurrency(numerator.Div(factor.Sub(one))), nil
	}

	numerator := principal.Mul(r).Mul(factor)
	return money.RoundCurrency(numerator.Div(factor.Sub(one))), nil
}

// paymentDate returns the due date of the given period, anchored on the first
// payment date so month-end clamping never drifts across the schedule.
func paymentDate(terms model.LoanTerms, period int) time.Time {
	if period == 1 {
		return terms.FirstPaymentDate()
	}
	return terms.Frequency().NextDate(terms.FirstPaymentDate(), period-1)
}

// periodRate returns the interest rate to apply for one period. Under the
// 30/360 convention every period accrues the flat periodic rate; the actual
// day-count conventions scale the annual rate by the true period length.
func periodRate(terms model.LoanTerms, prev, due time.Time) decimal.Decimal {
	if terms.DayCount().Equal(valueobject.DayCountThirty360) &&
		!terms.LoanType().Equal(valueobject.LoanTypeBlended) {
		return terms.PeriodicRate()
	}
	annual := terms.AnnualRate().Div(decimal.NewFromInt(100))
	return money.RoundCalc(annual.Mul(terms.DayCount().YearFraction(prev, due)))
}
