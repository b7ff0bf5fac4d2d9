package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/harborbank/servicing/internal/application/dto"
	"github.com/harborbank/servicing/internal/domain/event"
	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/port"
	"github.com/harborbank/servicing/internal/domain/service"
	"github.com/harborbank/servicing/internal/domain/valueobject"
)

// RecalculatePrepaymentUseCase evaluates the effect of an extra principal
// payment on a loan. The scenario is computed on demand and nothing is
// persisted; only a PrepaymentEvaluated event leaves the service.
type RecalculatePrepaymentUseCase struct {
	loanRepo   port.LoanRecordRepository
	engine     *service.AmortizationEngine
	calculator *service.PrepaymentCalculator
	publisher  port.EventPublisher
}

// NewRecalculatePrepaymentUseCase wires dependencies.
func NewRecalculatePrepaymentUseCase(
	loanRepo port.LoanRecordRepository,
	engine *service.AmortizationEngine,
	calculator *service.PrepaymentCalculator,
	publisher port.EventPublisher,
) *RecalculatePrepaymentUseCase {
	return &RecalculatePrepaymentUseCase{
		loanRepo:   loanRepo,
		engine:     engine,
		calculator: calculator,
		publisher:  publisher,
	}
}

// Execute computes the prepayment scenario for the requested loan.
func (uc *RecalculatePrepaymentUseCase) Execute(
	ctx context.Context,
	req dto.RecalculatePrepaymentRequest,
) (dto.PrepaymentResponse, error) {
	// 1. Retrieve the loan record.
	record, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.PrepaymentResponse{}, fmt.Errorf("find loan: %w", err)
	}
	terms := record.Terms()

	prepayType, err := valueobject.NewPrepaymentType(req.PrepaymentType)
	if err != nil {
		return dto.PrepaymentResponse{}, fmt.Errorf("prepayment type: %w", err)
	}

	// 2. Derive the scalar inputs from the current loan state.
	payment, _, err := uc.engine.CalculatePayment(terms)
	if err != nil {
		return dto.PrepaymentResponse{}, fmt.Errorf("calculate payment: %w", err)
	}
	prepayDate := req.PrepaymentDate
	if prepayDate.IsZero() {
		prepayDate = time.Now().UTC()
	}
	result, err := uc.calculator.Recalculate(service.PrepaymentInput{
		RemainingBalance:    record.CurrentBalance(),
		PeriodicPayment:     payment,
		AnnualRate:          terms.AnnualRate(),
		RemainingTermMonths: terms.TermMonths(),
		PrepaymentAmount:    req.PrepaymentAmount,
		PrepaymentDate:      prepayDate,
		Type:                prepayType,
	})
	if err != nil {
		return dto.PrepaymentResponse{}, fmt.Errorf("recalculate prepayment: %w", err)
	}

	// 3. Announce the evaluation.
	ev := event.NewPrepaymentEvaluated(
		record.ID(), record.TenantID(), result.PrepaymentType,
		result.PrepaymentAmount, result.NewPayment, result.InterestSavings,
		result.NewTerm,
	)
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		return dto.PrepaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toPrepaymentResponse(record.ID(), result), nil
}

func toPrepaymentResponse(loanID string, r model.PrepaymentResult) dto.PrepaymentResponse {
	return dto.PrepaymentResponse{
		LoanID:                loanID,
		PrepaymentAmount:      r.PrepaymentAmount,
		PrepaymentDate:        r.PrepaymentDate,
		PrepaymentType:        r.PrepaymentType,
		OriginalTerm:          r.OriginalTerm,
		NewTerm:               r.NewTerm,
		TermReduction:         r.TermReduction,
		OriginalPayment:       r.OriginalPayment,
		NewPayment:            r.NewPayment,
		PaymentReduction:      r.PaymentReduction,
		OriginalTotalInterest: r.OriginalTotalInterest,
		NewTotalInterest:      r.NewTotalInterest,
		InterestSavings:       r.InterestSavings,
	}
}
