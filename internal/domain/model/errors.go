package model

import "errors"

// Structural precondition failures reported synchronously to the caller.
// None of these are retried internally and none are downgraded to defaults.
var (
	// ErrInvalidLoanTerms is returned for non-positive principal or term,
	// a negative rate, or a balloon scheduled outside the term.
	ErrInvalidLoanTerms = errors.New("invalid loan terms")

	// ErrInvalidPrepayment is returned when a prepayment exceeds the
	// remaining balance.
	ErrInvalidPrepayment = errors.New("invalid prepayment")

	// ErrUnpayableAtCurrentPayment is returned by a reduce-term prepayment
	// when the scheduled payment does not cover interest on the reduced
	// balance, so no finite term exists.
	ErrUnpayableAtCurrentPayment = errors.New("loan cannot be paid off at current payment")

	// ErrAllocationReconciliation indicates allocation components failed to
	// sum to the payment total after reconciliation. It is unreachable by
	// construction and indicates a logic bug, not a user error.
	ErrAllocationReconciliation = errors.New("allocation components do not sum to total")

	// ErrLoanNotFound is returned by repositories when no loan record
	// matches the lookup.
	ErrLoanNotFound = errors.New("loan record not found")
)
