package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// GetScheduleRequest identifies a loan whose schedule should be returned.
type GetScheduleRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// CalculatePaymentRequest quotes a payment for hypothetical terms without a
// persisted loan.
type CalculatePaymentRequest struct {
	Principal        decimal.Decimal `json:"principal"`
	AnnualRate       decimal.Decimal `json:"annual_rate"`
	TermMonths       int             `json:"term_months"`
	PaymentFrequency string          `json:"payment_frequency,omitempty"`
	LoanType         string          `json:"loan_type,omitempty"`
}

// AllocatePaymentRequest carries one received payment to split.
type AllocatePaymentRequest struct {
	TenantID        string          `json:"tenant_id"`
	LoanID          string          `json:"loan_id"`
	Amount          decimal.Decimal `json:"amount"`
	Fees            decimal.Decimal `json:"fees,omitempty"`
	Penalties       decimal.Decimal `json:"penalties,omitempty"`
	Escrow          decimal.Decimal `json:"escrow,omitempty"`
	LateFees        decimal.Decimal `json:"late_fees,omitempty"`
	OtherFees       decimal.Decimal `json:"other_fees,omitempty"`
	MinimumInterest decimal.Decimal `json:"minimum_interest,omitempty"`
}

// RecalculatePrepaymentRequest evaluates an extra principal payment scenario.
type RecalculatePrepaymentRequest struct {
	TenantID         string          `json:"tenant_id"`
	LoanID           string          `json:"loan_id"`
	PrepaymentAmount decimal.Decimal `json:"prepayment_amount"`
	PrepaymentDate   time.Time       `json:"prepayment_date"`
	PrepaymentType   string          `json:"prepayment_type"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScheduleEntryResponse is one row of a payment schedule.
type ScheduleEntryResponse struct {
	PaymentNumber       int             `json:"payment_number"`
	PaymentDate         time.Time       `json:"payment_date"`
	ScheduledPayment    decimal.Decimal `json:"scheduled_payment"`
	PrincipalPayment    decimal.Decimal `json:"principal_payment"`
	InterestPayment     decimal.Decimal `json:"interest_payment"`
	TotalPayment        decimal.Decimal `json:"total_payment"`
	RemainingBalance    decimal.Decimal `json:"remaining_balance"`
	CumulativeInterest  decimal.Decimal `json:"cumulative_interest"`
	CumulativePrincipal decimal.Decimal `json:"cumulative_principal"`
	BalloonPayment      decimal.Decimal `json:"balloon_payment,omitempty"`
}

// ScheduleResponse is the external representation of a payment schedule.
type ScheduleResponse struct {
	LoanID           string                  `json:"loan_id"`
	Entries          []ScheduleEntryResponse `json:"entries"`
	TotalPayments    decimal.Decimal         `json:"total_payments"`
	TotalInterest    decimal.Decimal         `json:"total_interest"`
	TotalPrincipal   decimal.Decimal         `json:"total_principal"`
	PeriodicPayment  decimal.Decimal         `json:"periodic_payment"`
	FirstPaymentDate time.Time               `json:"first_payment_date"`
	LastPaymentDate  time.Time               `json:"last_payment_date"`
	TermMonths       int                     `json:"term_months"`
	FromCache        bool                    `json:"from_cache"`
}

// PaymentQuoteResponse is the result of a hypothetical payment calculation.
type PaymentQuoteResponse struct {
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// AllocationResponse is the external representation of a payment allocation.
type AllocationResponse struct {
	LoanID           string          `json:"loan_id"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Fees             decimal.Decimal `json:"fees"`
	Penalties        decimal.Decimal `json:"penalties"`
	Escrow           decimal.Decimal `json:"escrow"`
	LateFees         decimal.Decimal `json:"late_fees"`
	OtherFees        decimal.Decimal `json:"other_fees"`
	Total            decimal.Decimal `json:"total"`
	Unallocated      decimal.Decimal `json:"unallocated"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	LoanStatus       string          `json:"loan_status"`
}

// PrepaymentResponse is the external representation of a prepayment scenario.
type PrepaymentResponse struct {
	LoanID                string          `json:"loan_id"`
	PrepaymentAmount      decimal.Decimal `json:"prepayment_amount"`
	PrepaymentDate        time.Time       `json:"prepayment_date"`
	PrepaymentType        string          `json:"prepayment_type"`
	OriginalTerm          int             `json:"original_term"`
	NewTerm               int             `json:"new_term"`
	TermReduction         int             `json:"term_reduction"`
	OriginalPayment       decimal.Decimal `json:"original_payment"`
	NewPayment            decimal.Decimal `json:"new_payment"`
	PaymentReduction      decimal.Decimal `json:"payment_reduction"`
	OriginalTotalInterest decimal.Decimal `json:"original_total_interest"`
	NewTotalInterest      decimal.Decimal `json:"new_total_interest"`
	InterestSavings       decimal.Decimal `json:"interest_savings"`
}
