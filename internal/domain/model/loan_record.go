package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/harborbank/servicing/internal/domain/event"
	"github.com/harborbank/servicing/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanRecord aggregate root
// ---------------------------------------------------------------------------

// LoanRecord is the servicing-side view of a loan: its immutable terms plus
// the mutable balance state that payments move. The aggregate is immutable;
// mutations return a new copy.
type LoanRecord struct {
	id             string
	tenantID       string
	terms          LoanTerms
	currentBalance decimal.Decimal
	status         valueobject.LoanStatus
	feesDue        decimal.Decimal
	escrowDue      decimal.Decimal
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// NewLoanRecord creates a servicing record for a newly boarded loan. The
// balance starts at the full principal and the record starts ACTIVE.
func NewLoanRecord(tenantID string, terms LoanTerms, now time.Time) (LoanRecord, error) {
	if tenantID == "" {
		return LoanRecord{}, errors.New("tenant ID is required")
	}
	return LoanRecord{
		id:             uuid.New().String(),
		tenantID:       tenantID,
		terms:          terms,
		currentBalance: terms.Principal(),
		status:         valueobject.LoanStatusActive,
		feesDue:        decimal.Zero,
		escrowDue:      decimal.Zero,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructLoanRecord rebuilds a LoanRecord aggregate from persistence.
func ReconstructLoanRecord(
	id, tenantID string,
	terms LoanTerms,
	currentBalance decimal.Decimal,
	status valueobject.LoanStatus,
	feesDue, escrowDue decimal.Decimal,
	version int,
	createdAt, updatedAt time.Time,
) LoanRecord {
	return LoanRecord{
		id:             id,
		tenantID:       tenantID,
		terms:          terms,
		currentBalance: currentBalance,
		status:         status,
		feesDue:        feesDue,
		escrowDue:      escrowDue,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ApplyAllocation reduces the balance by the principal component of an
// allocation and emits PaymentAllocated (and LoanPaidOff at zero balance).
func (r LoanRecord) ApplyAllocation(alloc PaymentAllocation, now time.Time) (LoanRecord, error) {
	if !r.status.AcceptsPayments() {
		return r, errors.New("payments can only be allocated to active or delinquent loans")
	}
	if alloc.Total.LessThanOrEqual(decimal.Zero) {
		return r, errors.New("allocation total must be positive")
	}
	if alloc.Principal.GreaterThan(r.currentBalance) {
		return r, errors.New("allocated principal exceeds current balance")
	}

	next := r
	next.currentBalance = r.currentBalance.Sub(alloc.Principal)
	next.updatedAt = now
	next.domainEvents = copyEvents(r.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewPaymentAllocated(
		r.id, r.tenantID, alloc.Total, alloc.Principal, alloc.Interest, next.currentBalance,
	))

	if next.currentBalance.Equal(decimal.Zero) {
		next.status = valueobject.LoanStatusPaidOff
		next.domainEvents = append(next.domainEvents, event.NewLoanPaidOff(r.id, r.tenantID))
	}

	return next, nil
}

// MarkDelinquent transitions ACTIVE -> DELINQUENT.
func (r LoanRecord) MarkDelinquent(now time.Time) (LoanRecord, error) {
	if !r.status.Equal(valueobject.LoanStatusActive) {
		return r, errors.New("only active loans can become delinquent")
	}
	next := r
	next.status = valueobject.LoanStatusDelinquent
	next.updatedAt = now
	next.domainEvents = copyEvents(r.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r LoanRecord) ID() string                       { return r.id }
func (r LoanRecord) TenantID() string                 { return r.tenantID }
func (r LoanRecord) Terms() LoanTerms                 { return r.terms }
func (r LoanRecord) CurrentBalance() decimal.Decimal  { return r.currentBalance }
func (r LoanRecord) Status() valueobject.LoanStatus   { return r.status }
func (r LoanRecord) FeesDue() decimal.Decimal         { return r.feesDue }
func (r LoanRecord) EscrowDue() decimal.Decimal       { return r.escrowDue }
func (r LoanRecord) Version() int                     { return r.version }
func (r LoanRecord) CreatedAt() time.Time             { return r.createdAt }
func (r LoanRecord) UpdatedAt() time.Time             { return r.updatedAt }
func (r LoanRecord) DomainEvents() []event.DomainEvent { return r.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (r LoanRecord) ClearEvents() LoanRecord {
	next := r
	next.domainEvents = nil
	return next
}

func copyEvents(in []event.DomainEvent) []event.DomainEvent {
	if in == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(in))
	copy(out, in)
	return out
}
