package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/harborbank/servicing/internal/application/dto"
	"github.com/harborbank/servicing/internal/application/usecase"
	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/pkg/money"
)

// ServicingHandler implements the gRPC servicing service handler.
type ServicingHandler struct {
	UnimplementedServicingServiceServer

	getSchedule      *usecase.GetScheduleUseCase
	calculatePayment *usecase.CalculatePaymentUseCase
	allocatePayment  *usecase.AllocatePaymentUseCase
	recalcPrepayment *usecase.RecalculatePrepaymentUseCase
}

// NewServicingHandler creates a new gRPC servicing handler.
func NewServicingHandler(
	getSchedule *usecase.GetScheduleUseCase,
	calculatePayment *usecase.CalculatePaymentUseCase,
	allocatePayment *usecase.AllocatePaymentUseCase,
	recalcPrepayment *usecase.RecalculatePrepaymentUseCase,
) *ServicingHandler {
	return &ServicingHandler{
		getSchedule:      getSchedule,
		calculatePayment: calculatePayment,
		allocatePayment:  allocatePayment,
		recalcPrepayment: recalcPrepayment,
	}
}

// GetScheduleRequest represents the gRPC request for a payment schedule.
type GetScheduleRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// ScheduleEntry is one schedule row on the wire. Amounts are decimal strings.
type ScheduleEntry struct {
	PaymentNumber       int    `json:"payment_number"`
	PaymentDate         string `json:"payment_date"`
	ScheduledPayment    string `json:"scheduled_payment"`
	PrincipalPayment    string `json:"principal_payment"`
	InterestPayment     string `json:"interest_payment"`
	TotalPayment        string `json:"total_payment"`
	RemainingBalance    string `json:"remaining_balance"`
	CumulativeInterest  string `json:"cumulative_interest"`
	CumulativePrincipal string `json:"cumulative_principal"`
	BalloonPayment      string `json:"balloon_payment,omitempty"`
}

// GetScheduleResponse represents the gRPC response for a payment schedule.
type GetScheduleResponse struct {
	LoanID          string           `json:"loan_id"`
	Entries         []*ScheduleEntry `json:"entries"`
	TotalPayments   string           `json:"total_payments"`
	TotalInterest   string           `json:"total_interest"`
	TotalPrincipal  string           `json:"total_principal"`
	PeriodicPayment string           `json:"periodic_payment"`
	TermMonths      int              `json:"term_months"`
	FromCache       bool             `json:"from_cache"`
}

// CalculatePaymentRequest represents the gRPC request for a payment quote.
type CalculatePaymentRequest struct {
	Principal        string `json:"principal"`
	AnnualRate       string `json:"annual_rate"`
	TermMonths       int    `json:"term_months"`
	PaymentFrequency string `json:"payment_frequency,omitempty"`
	LoanType         string `json:"loan_type,omitempty"`
}

// CalculatePaymentResponse represents the gRPC response for a payment quote.
type CalculatePaymentResponse struct {
	PaymentAmount string `json:"payment_amount"`
	TotalInterest string `json:"total_interest"`
}

// AllocatePaymentRequest represents the gRPC request to allocate a payment.
type AllocatePaymentRequest struct {
	TenantID  string `json:"tenant_id"`
	LoanID    string `json:"loan_id"`
	Amount    string `json:"amount"`
	Fees      string `json:"fees,omitempty"`
	Penalties string `json:"penalties,omitempty"`
	Escrow    string `json:"escrow,omitempty"`
	LateFees  string `json:"late_fees,omitempty"`
	OtherFees string `json:"other_fees,omitempty"`
}

// AllocatePaymentResponse represents the gRPC response for an allocation.
type AllocatePaymentResponse struct {
	LoanID           string `json:"loan_id"`
	Principal        string `json:"principal"`
	Interest         string `json:"interest"`
	Fees             string `json:"fees"`
	Penalties        string `json:"penalties"`
	Escrow           string `json:"escrow"`
	LateFees         string `json:"late_fees"`
	OtherFees        string `json:"other_fees"`
	Total            string `json:"total"`
	Unallocated      string `json:"unallocated"`
	RemainingBalance string `json:"remaining_balance"`
	LoanStatus       string `json:"loan_status"`
}

// RecalculatePrepaymentRequest represents the gRPC request for a prepayment
// scenario.
type RecalculatePrepaymentRequest struct {
	TenantID         string `json:"tenant_id"`
	LoanID           string `json:"loan_id"`
	PrepaymentAmount string `json:"prepayment_amount"`
	PrepaymentDate   string `json:"prepayment_date,omitempty"`
	PrepaymentType   string `json:"prepayment_type"`
}

// RecalculatePrepaymentResponse represents the gRPC response for a prepayment
// scenario.
type RecalculatePrepaymentResponse struct {
	LoanID                string `json:"loan_id"`
	PrepaymentAmount      string `json:"prepayment_amount"`
	PrepaymentType        string `json:"prepayment_type"`
	OriginalTerm          int    `json:"original_term"`
	NewTerm               int    `json:"new_term"`
	TermReduction         int    `json:"term_reduction"`
	OriginalPayment       string `json:"original_payment"`
	NewPayment            string `json:"new_payment"`
	PaymentReduction      string `json:"payment_reduction"`
	OriginalTotalInterest string `json:"original_total_interest"`
	NewTotalInterest      string `json:"new_total_interest"`
	InterestSavings       string `json:"interest_savings"`
}

// GetSchedule handles the gRPC GetSchedule request.
func (h *ServicingHandler) GetSchedule(ctx context.Context, req *GetScheduleRequest) (*GetScheduleResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.TenantID == "" || req.LoanID == "" {
		return nil, status.Error(codes.InvalidArgument, "tenant_id and loan_id are required")
	}

	result, err := h.getSchedule.Execute(ctx, dto.GetScheduleRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	entries := make([]*ScheduleEntry, 0, len(result.Entries))
	for _, e := range result.Entries {
		entry := &ScheduleEntry{
			PaymentNumber:       e.PaymentNumber,
			PaymentDate:         e.PaymentDate.Format(time.RFC3339),
			ScheduledPayment:    e.ScheduledPayment.String(),
			PrincipalPayment:    e.PrincipalPayment.String(),
			InterestPayment:     e.InterestPayment.String(),
			TotalPayment:        e.TotalPayment.String(),
			RemainingBalance:    e.RemainingBalance.String(),
			CumulativeInterest:  e.CumulativeInterest.String(),
			CumulativePrincipal: e.CumulativePrincipal.String(),
		}
		if !e.BalloonPayment.IsZero() {
			entry.BalloonPayment = e.BalloonPayment.String()
		}
		entries = append(entries, entry)
	}

	return &GetScheduleResponse{
		LoanID:          result.LoanID,
		Entries:         entries,
		TotalPayments:   result.TotalPayments.String(),
		TotalInterest:   result.TotalInterest.String(),
		TotalPrincipal:  result.TotalPrincipal.String(),
		PeriodicPayment: result.PeriodicPayment.String(),
		TermMonths:      result.TermMonths,
		FromCache:       result.FromCache,
	}, nil
}

// CalculatePayment handles the gRPC CalculatePayment request.
func (h *ServicingHandler) CalculatePayment(ctx context.Context, req *CalculatePaymentRequest) (*CalculatePaymentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	principal, err := money.ParseAmount(req.Principal)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid principal: %v", err))
	}
	rate, err := money.ParseAmount(req.AnnualRate)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid annual_rate: %v", err))
	}

	result, err := h.calculatePayment.Execute(ctx, dto.CalculatePaymentRequest{
		Principal:        principal,
		AnnualRate:       rate,
		TermMonths:       req.TermMonths,
		PaymentFrequency: req.PaymentFrequency,
		LoanType:         req.LoanType,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &CalculatePaymentResponse{
		PaymentAmount: result.PaymentAmount.String(),
		TotalInterest: result.TotalInterest.String(),
	}, nil
}

// AllocatePayment handles the gRPC AllocatePayment request.
func (h *ServicingHandler) AllocatePayment(ctx context.Context, req *AllocatePaymentRequest) (*AllocatePaymentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.TenantID == "" || req.LoanID == "" {
		return nil, status.Error(codes.InvalidArgument, "tenant_id and loan_id are required")
	}

	amount, err := money.ParseAmount(req.Amount)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid amount: %v", err))
	}
	fees, err := optionalAmount(req.Fees, "fees")
	if err != nil {
		return nil, err
	}
	penalties, err := optionalAmount(req.Penalties, "penalties")
	if err != nil {
		return nil, err
	}
	escrow, err := optionalAmount(req.Escrow, "escrow")
	if err != nil {
		return nil, err
	}
	lateFees, err := optionalAmount(req.LateFees, "late_fees")
	if err != nil {
		return nil, err
	}
	otherFees, err := optionalAmount(req.OtherFees, "other_fees")
	if err != nil {
		return nil, err
	}

	result, err := h.allocatePayment.Execute(ctx, dto.AllocatePaymentRequest{
		TenantID:  req.TenantID,
		LoanID:    req.LoanID,
		Amount:    amount,
		Fees:      fees,
		Penalties: penalties,
		Escrow:    escrow,
		LateFees:  lateFees,
		OtherFees: otherFees,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &AllocatePaymentResponse{
		LoanID:           result.LoanID,
		Principal:        result.Principal.String(),
		Interest:         result.Interest.String(),
		Fees:             result.Fees.String(),
		Penalties:        result.Penalties.String(),
		Escrow:           result.Escrow.String(),
		LateFees:         result.LateFees.String(),
		OtherFees:        result.OtherFees.String(),
		Total:            result.Total.String(),
		Unallocated:      result.Unallocated.String(),
		RemainingBalance: result.RemainingBalance.String(),
		LoanStatus:       result.LoanStatus,
	}, nil
}

// RecalculatePrepayment handles the gRPC RecalculatePrepayment request.
func (h *ServicingHandler) RecalculatePrepayment(ctx context.Context, req *RecalculatePrepaymentRequest) (*RecalculatePrepaymentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.TenantID == "" || req.LoanID == "" {
		return nil, status.Error(codes.InvalidArgument, "tenant_id and loan_id are required")
	}

	amount, err := money.ParseAmount(req.PrepaymentAmount)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid prepayment_amount: %v", err))
	}
	var prepayDate time.Time
	if req.PrepaymentDate != "" {
		prepayDate, err = time.Parse(time.RFC3339, req.PrepaymentDate)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid prepayment_date: %v", err))
		}
	}

	result, err := h.recalcPrepayment.Execute(ctx, dto.RecalculatePrepaymentRequest{
		TenantID:         req.TenantID,
		LoanID:           req.LoanID,
		PrepaymentAmount: amount,
		PrepaymentDate:   prepayDate,
		PrepaymentType:   req.PrepaymentType,
	})
	if err != nil {
		return nil, statusFromError(err)
	}

	return &RecalculatePrepaymentResponse{
		LoanID:                result.LoanID,
		PrepaymentAmount:      result.PrepaymentAmount.String(),
		PrepaymentType:        result.PrepaymentType,
		OriginalTerm:          result.OriginalTerm,
		NewTerm:               result.NewTerm,
		TermReduction:         result.TermReduction,
		OriginalPayment:       result.OriginalPayment.String(),
		NewPayment:            result.NewPayment.String(),
		PaymentReduction:      result.PaymentReduction.String(),
		OriginalTotalInterest: result.OriginalTotalInterest.String(),
		NewTotalInterest:      result.NewTotalInterest.String(),
		InterestSavings:       result.InterestSavings.String(),
	}, nil
}

func optionalAmount(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := money.ParseAmount(s)
	if err != nil {
		return decimal.Decimal{}, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid %s: %v", field, err))
	}
	return d, nil
}

// statusFromError maps domain failures onto gRPC status codes.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidLoanTerms),
		errors.Is(err, model.ErrInvalidPrepayment),
		errors.Is(err, money.ErrInvalidNumericInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrLoanNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrUnpayableAtCurrentPayment):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrAllocationReconciliation):
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
