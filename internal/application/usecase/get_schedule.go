package usecase

import (
	"context"
	"fmt"

	"github.com/harborbank/servicing/internal/application/dto"
	"github.com/harborbank/servicing/internal/domain/event"
	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/port"
	"github.com/harborbank/servicing/internal/domain/service"
)

// GetScheduleUseCase returns the payment schedule for a loan, computing it
// through the calculation cache so repeated reads of the same terms never
// redo the amortization.
type GetScheduleUseCase struct {
	loanRepo  port.LoanRecordRepository
	cache     port.ScheduleCache
	engine    *service.AmortizationEngine
	publisher port.EventPublisher
}

// NewGetScheduleUseCase wires dependencies.
func NewGetScheduleUseCase(
	loanRepo port.LoanRecordRepository,
	cache port.ScheduleCache,
	engine *service.AmortizationEngine,
	publisher port.EventPublisher,
) *GetScheduleUseCase {
	return &GetScheduleUseCase{
		loanRepo:  loanRepo,
		cache:     cache,
		engine:    engine,
		publisher: publisher,
	}
}

// Execute returns the schedule for the requested loan.
func (uc *GetScheduleUseCase) Execute(
	ctx context.Context,
	req dto.GetScheduleRequest,
) (dto.ScheduleResponse, error) {
	// 1. Retrieve the loan record.
	record, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("find loan: %w", err)
	}
	terms := record.Terms()

	// 2. Resolve through the cache; the engine only runs on a miss.
	schedule, fromCache, err := uc.cache.GetOrCalculate(ctx, record.ID(), terms, func() (model.PaymentSchedule, error) {
		return uc.engine.GenerateSchedule(terms)
	})
	if err != nil {
		return dto.ScheduleResponse{}, fmt.Errorf("generate schedule: %w", err)
	}

	// 3. Announce fresh computations only; cache hits are silent.
	if !fromCache {
		ev := event.NewScheduleCalculated(
			record.ID(), record.TenantID(), terms.Fingerprint(),
			schedule.Len(), schedule.PeriodicPayment, schedule.TotalInterest,
		)
		if err := uc.publisher.Publish(ctx, ev); err != nil {
			return dto.ScheduleResponse{}, fmt.Errorf("publish events: %w", err)
		}
	}

	return toScheduleResponse(record.ID(), schedule, fromCache), nil
}

func toScheduleResponse(loanID string, s model.PaymentSchedule, fromCache bool) dto.ScheduleResponse {
	entries := make([]dto.ScheduleEntryResponse, 0, s.Len())
	for _, e := range s.Entries {
		entries = append(entries, dto.ScheduleEntryResponse{
			PaymentNumber:       e.PaymentNumber,
			PaymentDate:         e.PaymentDate,
			ScheduledPayment:    e.ScheduledPayment,
			PrincipalPayment:    e.PrincipalPayment,
			InterestPayment:     e.InterestPayment,
			TotalPayment:        e.TotalPayment,
			RemainingBalance:    e.RemainingBalance,
			CumulativeInterest:  e.CumulativeInterest,
			CumulativePrincipal: e.CumulativePrincipal,
			BalloonPayment:      e.BalloonPayment,
		})
	}
	return dto.ScheduleResponse{
		LoanID:           loanID,
		Entries:          entries,
		TotalPayments:    s.TotalPayments,
		TotalInterest:    s.TotalInterest,
		TotalPrincipal:   s.TotalPrincipal,
		PeriodicPayment:  s.PeriodicPayment,
		FirstPaymentDate: s.FirstPaymentDate,
		LastPaymentDate:  s.LastPaymentDate,
		TermMonths:       s.TermMonths,
		FromCache:        fromCache,
	}
}
