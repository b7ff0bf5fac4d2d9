package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// PrepaymentType – immutable value object
// ---------------------------------------------------------------------------

// PrepaymentType selects what an extra principal payment changes: the
// remaining term (payment held constant) or the payment (term held constant).
type PrepaymentType struct {
	value string
}

const (
	prepaymentReduceTerm    = "REDUCE_TERM"
	prepaymentReducePayment = "REDUCE_PAYMENT"
)

var (
	PrepaymentReduceTerm    = PrepaymentType{value: prepaymentReduceTerm}
	PrepaymentReducePayment = PrepaymentType{value: prepaymentReducePayment}
)

var validPrepaymentTypes = map[string]PrepaymentType{
	prepaymentReduceTerm:    PrepaymentReduceTerm,
	prepaymentReducePayment: PrepaymentReducePayment,
}

// NewPrepaymentType creates a PrepaymentType from a raw string.
func NewPrepaymentType(s string) (PrepaymentType, error) {
	v, ok := validPrepaymentTypes[s]
	if !ok {
		return PrepaymentType{}, fmt.Errorf("invalid prepayment type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the prepayment type.
func (t PrepaymentType) String() string { return t.value }

// IsZero returns true if the prepayment type has not been initialised.
func (t PrepaymentType) IsZero() bool { return t.value == "" }

// Equal returns true when both types carry the same value.
func (t PrepaymentType) Equal(other PrepaymentType) bool { return t.value == other.value }
