package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanType – immutable value object
// ---------------------------------------------------------------------------

// LoanType selects the interest model used when generating a schedule.
type LoanType struct {
	value string
}

const (
	loanTypeAmortized      = "AMORTIZED"
	loanTypeSimpleInterest = "SIMPLE_INTEREST"
	loanTypeBlended        = "BLENDED"
)

var (
	// LoanTypeAmortized is a level-payment annuity loan.
	LoanTypeAmortized = LoanType{value: loanTypeAmortized}
	// LoanTypeSimpleInterest is a level-principal loan with interest charged
	// on the open balance each period.
	LoanTypeSimpleInterest = LoanType{value: loanTypeSimpleInterest}
	// LoanTypeBlended is a level-payment loan whose per-period interest is
	// scaled by the day-count convention over the actual period length.
	LoanTypeBlended = LoanType{value: loanTypeBlended}
)

var validLoanTypes = map[string]LoanType{
	loanTypeAmortized:      LoanTypeAmortized,
	loanTypeSimpleInterest: LoanTypeSimpleInterest,
	loanTypeBlended:        LoanTypeBlended,
}

// NewLoanType creates a LoanType from a raw string.
func NewLoanType(s string) (LoanType, error) {
	v, ok := validLoanTypes[s]
	if !ok {
		return LoanType{}, fmt.Errorf("invalid loan type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the loan type.
func (t LoanType) String() string { return t.value }

// IsZero returns true if the loan type has not been initialised.
func (t LoanType) IsZero() bool { return t.value == "" }

// Equal returns true when both loan types carry the same value.
func (t LoanType) Equal(other LoanType) bool { return t.value == other.value }
