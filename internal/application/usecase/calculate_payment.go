package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/harborbank/servicing/internal/application/dto"
	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/service"
	"github.com/harborbank/servicing/internal/domain/valueobject"
)

// CalculatePaymentUseCase quotes the periodic payment for hypothetical terms.
// No loan is loaded or persisted; the quote is pure computation.
type CalculatePaymentUseCase struct {
	engine   *service.AmortizationEngine
	dayCount valueobject.DayCountConvention
}

// NewCalculatePaymentUseCase wires dependencies. dayCount is the configured
// calendar convention applied to quotes, which carry no convention of their
// own.
func NewCalculatePaymentUseCase(
	engine *service.AmortizationEngine,
	dayCount valueobject.DayCountConvention,
) *CalculatePaymentUseCase {
	return &CalculatePaymentUseCase{engine: engine, dayCount: dayCount}
}

// Execute computes the payment quote.
func (uc *CalculatePaymentUseCase) Execute(
	_ context.Context,
	req dto.CalculatePaymentRequest,
) (dto.PaymentQuoteResponse, error) {
	// 1. Build value objects from the raw request strings.
	var frequency valueobject.PaymentFrequency
	if req.PaymentFrequency != "" {
		f, err := valueobject.NewPaymentFrequency(req.PaymentFrequency)
		if err != nil {
			return dto.PaymentQuoteResponse{}, fmt.Errorf("payment frequency: %w", err)
		}
		frequency = f
	}
	var loanType valueobject.LoanType
	if req.LoanType != "" {
		lt, err := valueobject.NewLoanType(req.LoanType)
		if err != nil {
			return dto.PaymentQuoteResponse{}, fmt.Errorf("loan type: %w", err)
		}
		loanType = lt
	}

	// 2. Assemble terms; start date is only an anchor for a quote.
	terms, err := model.NewLoanTerms(
		req.Principal, req.AnnualRate, req.TermMonths,
		time.Now().UTC(), time.Time{},
		frequency, loanType, uc.dayCount, nil,
	)
	if err != nil {
		return dto.PaymentQuoteResponse{}, fmt.Errorf("loan terms: %w", err)
	}

	// 3. Quote.
	payment, totalInterest, err := uc.engine.CalculatePayment(terms)
	if err != nil {
		return dto.PaymentQuoteResponse{}, fmt.Errorf("calculate payment: %w", err)
	}

	return dto.PaymentQuoteResponse{
		PaymentAmount: payment,
		TotalInterest: totalInterest,
	}, nil
}
