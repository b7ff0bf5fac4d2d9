package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the servicing lifecycle stage of a loan record.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive     = "ACTIVE"
	loanStatusDelinquent = "DELINQUENT"
	loanStatusPaidOff    = "PAID_OFF"
)

var (
	LoanStatusActive     = LoanStatus{value: loanStatusActive}
	LoanStatusDelinquent = LoanStatus{value: loanStatusDelinquent}
	LoanStatusPaidOff    = LoanStatus{value: loanStatusPaidOff}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:     LoanStatusActive,
	loanStatusDelinquent: LoanStatusDelinquent,
	loanStatusPaidOff:    LoanStatusPaidOff,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// AcceptsPayments reports whether payments may be allocated against a loan
// in this status.
func (s LoanStatus) AcceptsPayments() bool {
	return s.value == loanStatusActive || s.value == loanStatusDelinquent
}
