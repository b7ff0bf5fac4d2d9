package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harborbank/servicing/internal/application/dto"
	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/port"
	"github.com/harborbank/servicing/internal/domain/service"
)

// AllocatePaymentUseCase splits a received payment across the servicing
// waterfall, applies the principal portion to the loan balance, and records
// the allocation.
type AllocatePaymentUseCase struct {
	loanRepo       port.LoanRecordRepository
	engine         *service.AllocationEngine
	publisher      port.EventPublisher
	residualTarget service.ResidualTarget
}

// NewAllocatePaymentUseCase wires dependencies. residualTarget controls
// which component absorbs a sub-cent rounding residual.
func NewAllocatePaymentUseCase(
	loanRepo port.LoanRecordRepository,
	engine *service.AllocationEngine,
	publisher port.EventPublisher,
	residualTarget service.ResidualTarget,
) *AllocatePaymentUseCase {
	return &AllocatePaymentUseCase{
		loanRepo:       loanRepo,
		engine:         engine,
		publisher:      publisher,
		residualTarget: residualTarget,
	}
}

// Execute allocates one payment against the loan.
func (uc *AllocatePaymentUseCase) Execute(
	ctx context.Context,
	req dto.AllocatePaymentRequest,
) (dto.AllocationResponse, error) {
	now := time.Now().UTC()

	// 1. Retrieve the loan record.
	record, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.AllocationResponse{}, fmt.Errorf("find loan: %w", err)
	}
	if !record.Status().AcceptsPayments() {
		return dto.AllocationResponse{}, fmt.Errorf("loan %s is %s and does not accept payments",
			record.ID(), record.Status())
	}

	// 2. Run the waterfall. Fees and escrow due on the record apply unless
	// the request overrides them.
	opts := service.AllocationOptions{
		Fees:            req.Fees,
		Penalties:       req.Penalties,
		Escrow:          req.Escrow,
		LateFees:        req.LateFees,
		OtherFees:       req.OtherFees,
		MinimumInterest: req.MinimumInterest,
		ResidualTarget:  uc.residualTarget,
	}
	if opts.Fees.IsZero() {
		opts.Fees = record.FeesDue()
	}
	if opts.Escrow.IsZero() {
		opts.Escrow = record.EscrowDue()
	}
	alloc, err := uc.engine.AllocatePayment(req.Amount, record.CurrentBalance(), record.Terms().PeriodicRate(), opts)
	if err != nil {
		return dto.AllocationResponse{}, fmt.Errorf("allocate payment: %w", err)
	}
	unallocated := uc.engine.ValidateAllocation(alloc, req.Amount)

	// 3. Apply the principal portion to the aggregate.
	record, err = record.ApplyAllocation(alloc, now)
	if err != nil {
		return dto.AllocationResponse{}, fmt.Errorf("apply allocation: %w", err)
	}

	// 4. Persist the record and the allocation row.
	if err := uc.loanRepo.Save(ctx, record); err != nil {
		return dto.AllocationResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.loanRepo.RecordAllocation(ctx, record.TenantID(), record.ID(), alloc); err != nil {
		return dto.AllocationResponse{}, fmt.Errorf("record allocation: %w", err)
	}

	// 5. Publish domain events (PaymentAllocated, LoanPaidOff on zero).
	if err := uc.publisher.Publish(ctx, record.DomainEvents()...); err != nil {
		return dto.AllocationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toAllocationResponse(record, alloc, unallocated), nil
}

func toAllocationResponse(record model.LoanRecord, alloc model.PaymentAllocation, unallocated decimal.Decimal) dto.AllocationResponse {
	return dto.AllocationResponse{
		LoanID:           record.ID(),
		Principal:        alloc.Principal,
		Interest:         alloc.Interest,
		Fees:             alloc.Fees,
		Penalties:        alloc.Penalties,
		Escrow:           alloc.Escrow,
		LateFees:         alloc.LateFees,
		OtherFees:        alloc.OtherFees,
		Total:            alloc.Total,
		Unallocated:      unallocated,
		RemainingBalance: record.CurrentBalance(),
		LoanStatus:       record.Status().String(),
	}
}
