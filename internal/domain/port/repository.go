package port

import (
	"context"

	"github.com/harborbank/servicing/internal/domain/event"
	"github.com/harborbank/servicing/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRecordRepository reads and writes servicing records. The calculation
// core never touches the database directly; callers hand it loan state
// through this port.
type LoanRecordRepository interface {
	Save(ctx context.Context, record model.LoanRecord) error
	FindByID(ctx context.Context, tenantID, id string) (model.LoanRecord, error)
	RecordAllocation(ctx context.Context, tenantID, loanID string, alloc model.PaymentAllocation) error
}

// ---------------------------------------------------------------------------
// Calculation cache port
// ---------------------------------------------------------------------------

// ComputeFunc produces a schedule on a cache miss.
type ComputeFunc func() (model.PaymentSchedule, error)

// ScheduleCache memoizes schedule computation per loan and parameter
// fingerprint. Implementations must coalesce concurrent computation per key
// and must never serve a schedule whose fingerprint no longer matches the
// terms.
type ScheduleCache interface {
	// GetOrCalculate returns the cached schedule for (loanID, terms) or runs
	// compute once and caches the result. The second return reports whether
	// the schedule came from the cache.
	GetOrCalculate(ctx context.Context, loanID string, terms model.LoanTerms, compute ComputeFunc) (model.PaymentSchedule, bool, error)

	// Invalidate drops any entry held for the loan.
	Invalidate(ctx context.Context, loanID string) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
