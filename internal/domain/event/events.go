package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DomainEvent is implemented by every event raised in the servicing domain.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	TenantID() string
	OccurredAt() time.Time
}

// BaseEvent provides the common DomainEvent implementation.
type BaseEvent struct {
	id          string
	eventType   string
	aggregateID string
	tenantID    string
	occurredAt  time.Time
}

// NewBaseEvent creates a BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID, tenantID string) BaseEvent {
	return BaseEvent{
		id:          uuid.New().String(),
		eventType:   eventType,
		aggregateID: aggregateID,
		tenantID:    tenantID,
		occurredAt:  time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.id }
func (e BaseEvent) EventType() string     { return e.eventType }
func (e BaseEvent) AggregateID() string   { return e.aggregateID }
func (e BaseEvent) TenantID() string      { return e.tenantID }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// ---------------------------------------------------------------------------
// Servicing events
// ---------------------------------------------------------------------------

// ScheduleCalculated is raised when a payment schedule is computed for a loan
// (cache misses only; cache hits do not re-raise it).
type ScheduleCalculated struct {
	BaseEvent
	Fingerprint     string          `json:"fingerprint"`
	Periods         int             `json:"periods"`
	PeriodicPayment decimal.Decimal `json:"periodic_payment"`
	TotalInterest   decimal.Decimal `json:"total_interest"`
}

func NewScheduleCalculated(
	loanID, tenantID, fingerprint string,
	periods int,
	periodicPayment, totalInterest decimal.Decimal,
) ScheduleCalculated {
	return ScheduleCalculated{
		BaseEvent:       NewBaseEvent("servicing.schedule.calculated", loanID, tenantID),
		Fingerprint:     fingerprint,
		Periods:         periods,
		PeriodicPayment: periodicPayment,
		TotalInterest:   totalInterest,
	}
}

// PaymentAllocated is raised when a received payment has been split across
// interest, fees, penalties, escrow and principal.
type PaymentAllocated struct {
	BaseEvent
	Amount           decimal.Decimal `json:"amount"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

func NewPaymentAllocated(
	loanID, tenantID string,
	amount, principal, interest, remainingBalance decimal.Decimal,
) PaymentAllocated {
	return PaymentAllocated{
		BaseEvent:        NewBaseEvent("servicing.payment.allocated", loanID, tenantID),
		Amount:           amount,
		Principal:        principal,
		Interest:         interest,
		RemainingBalance: remainingBalance,
	}
}

// LoanPaidOff is raised when an allocation brings the balance to zero.
type LoanPaidOff struct {
	BaseEvent
}

func NewLoanPaidOff(loanID, tenantID string) LoanPaidOff {
	return LoanPaidOff{
		BaseEvent: NewBaseEvent("servicing.loan.paid_off", loanID, tenantID),
	}
}

// PrepaymentEvaluated is raised when a prepayment scenario has been computed
// for a loan.
type PrepaymentEvaluated struct {
	BaseEvent
	PrepaymentType   string          `json:"prepayment_type"`
	PrepaymentAmount decimal.Decimal `json:"prepayment_amount"`
	NewTerm          int             `json:"new_term"`
	NewPayment       decimal.Decimal `json:"new_payment"`
	InterestSavings  decimal.Decimal `json:"interest_savings"`
}

func NewPrepaymentEvaluated(
	loanID, tenantID, prepaymentType string,
	amount, newPayment, interestSavings decimal.Decimal,
	newTerm int,
) PrepaymentEvaluated {
	return PrepaymentEvaluated{
		BaseEvent:        NewBaseEvent("servicing.prepayment.evaluated", loanID, tenantID),
		PrepaymentType:   prepaymentType,
		PrepaymentAmount: amount,
		NewTerm:          newTerm,
		NewPayment:       newPayment,
		InterestSavings:  interestSavings,
	}
}
