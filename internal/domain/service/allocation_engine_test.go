package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborbank/servicing/internal/domain/service"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestAllocatePayment_InterestThenPrincipal(t *testing.T) {
	// $304.22 against a $10,000 balance at 6% annual (0.5% monthly):
	// interest $50.00, principal $254.22.
	engine := service.NewAllocationEngine()

	alloc, err := engine.AllocatePayment(
		dec(t, "304.22"), dec(t, "10000.00"), dec(t, "0.005"),
		service.AllocationOptions{},
	)
	require.NoError(t, err)

	assert.True(t, alloc.Interest.Equal(dec(t, "50.00")), "interest = %s, want 50.00", alloc.Interest)
	assert.True(t, alloc.Principal.Equal(dec(t, "254.22")), "principal = %s, want 254.22", alloc.Principal)
	assert.True(t, alloc.Total.Equal(dec(t, "304.22")), "total = %s, want 304.22", alloc.Total)

	residual := engine.ValidateAllocation(alloc, dec(t, "304.22"))
	assert.True(t, residual.IsZero(), "residual = %s, want 0", residual)
}

func TestAllocatePayment_Waterfall(t *testing.T) {
	engine := service.NewAllocationEngine()

	alloc, err := engine.AllocatePayment(
		dec(t, "500.00"), dec(t, "10000.00"), dec(t, "0.005"),
		service.AllocationOptions{
			Fees:      dec(t, "25.00"),
			Penalties: dec(t, "15.00"),
			Escrow:    dec(t, "100.00"),
			LateFees:  dec(t, "10.00"),
			OtherFees: dec(t, "5.00"),
		},
	)
	require.NoError(t, err)

	assert.True(t, alloc.Interest.Equal(dec(t, "50.00")))
	assert.True(t, alloc.Fees.Equal(dec(t, "25.00")))
	assert.True(t, alloc.Penalties.Equal(dec(t, "15.00")))
	assert.True(t, alloc.Escrow.Equal(dec(t, "100.00")))
	assert.True(t, alloc.LateFees.Equal(dec(t, "10.00")))
	assert.True(t, alloc.OtherFees.Equal(dec(t, "5.00")))
	assert.True(t, alloc.Principal.Equal(dec(t, "295.00")),
		"principal should be the remainder, got %s", alloc.Principal)
	assert.True(t, engine.ValidateAllocation(alloc, dec(t, "500.00")).IsZero())
}

func TestAllocatePayment_ShortPaymentStopsMidWaterfall(t *testing.T) {
	// $60 covers interest ($50) and only $10 of the $25 fees; nothing below.
	engine := service.NewAllocationEngine()

	alloc, err := engine.AllocatePayment(
		dec(t, "60.00"), dec(t, "10000.00"), dec(t, "0.005"),
		service.AllocationOptions{
			Fees:   dec(t, "25.00"),
			Escrow: dec(t, "100.00"),
		},
	)
	require.NoError(t, err)

	assert.True(t, alloc.Interest.Equal(dec(t, "50.00")))
	assert.True(t, alloc.Fees.Equal(dec(t, "10.00")))
	assert.True(t, alloc.Escrow.IsZero())
	assert.True(t, alloc.Principal.IsZero())
	assert.True(t, engine.ValidateAllocation(alloc, dec(t, "60.00")).IsZero())
}

func TestAllocatePayment_MinimumInterestFloor(t *testing.T) {
	engine := service.NewAllocationEngine()

	alloc, err := engine.AllocatePayment(
		dec(t, "100.00"), dec(t, "1000.00"), dec(t, "0.005"),
		service.AllocationOptions{MinimumInterest: dec(t, "25.00")},
	)
	require.NoError(t, err)

	// Computed interest due is $5.00 but the floor lifts it to $25.00.
	assert.True(t, alloc.Interest.Equal(dec(t, "25.00")), "interest = %s, want 25.00", alloc.Interest)
	assert.True(t, alloc.Principal.Equal(dec(t, "75.00")))
}

func TestAllocatePayment_SubCentOptionsReconcileIntoPrincipal(t *testing.T) {
	// Fee amounts carrying sub-cent precision are rounded to currency
	// precision before being taken, so components still sum to the total.
	engine := service.NewAllocationEngine()

	alloc, err := engine.AllocatePayment(
		dec(t, "300.00"), dec(t, "10000.00"), dec(t, "0.005"),
		service.AllocationOptions{
			Fees:      dec(t, "10.005"),
			Penalties: dec(t, "10.005"),
		},
	)
	require.NoError(t, err)

	assert.True(t, alloc.Total.Equal(dec(t, "300.00")))
	assert.True(t, alloc.Sum().Equal(alloc.Total),
		"components %s should sum to total %s", alloc.Sum(), alloc.Total)
	assert.True(t, engine.ValidateAllocation(alloc, dec(t, "300.00")).IsZero())
}

func TestAllocatePayment_ResidualToInterestPolicy(t *testing.T) {
	engine := service.NewAllocationEngine()

	base := service.AllocationOptions{Fees: dec(t, "10.005")}
	toPrincipal, err := engine.AllocatePayment(dec(t, "300.00"), dec(t, "10000.00"), dec(t, "0.005"), base)
	require.NoError(t, err)

	toInterest := base
	toInterest.ResidualTarget = service.ResidualToInterest
	withInterest, err := engine.AllocatePayment(dec(t, "300.00"), dec(t, "10000.00"), dec(t, "0.005"), toInterest)
	require.NoError(t, err)

	// Same total either way; both policies preserve the sum invariant.
	assert.True(t, toPrincipal.Total.Equal(withInterest.Total))
	assert.True(t, toPrincipal.Sum().Equal(toPrincipal.Total))
	assert.True(t, withInterest.Sum().Equal(withInterest.Total))
}

func TestAllocatePayment_OverpaymentNotAbsorbedByInterestTarget(t *testing.T) {
	// Payment exceeds interest plus the full balance under the INTEREST
	// residual policy: the clamp excess is an overpayment, not a rounding
	// residual, and must stay unallocated rather than inflate interest.
	engine := service.NewAllocationEngine()

	alloc, err := engine.AllocatePayment(
		dec(t, "600.00"), dec(t, "500.00"), dec(t, "0.005"),
		service.AllocationOptions{ResidualTarget: service.ResidualToInterest},
	)
	require.NoError(t, err)

	assert.True(t, alloc.Interest.Equal(dec(t, "2.50")),
		"interest must stay at the amount due, got %s", alloc.Interest)
	assert.True(t, alloc.Principal.Equal(dec(t, "500.00")))
	assert.True(t, alloc.Total.Equal(dec(t, "502.50")))

	excess := engine.ValidateAllocation(alloc, dec(t, "600.00"))
	assert.True(t, excess.Equal(dec(t, "97.50")),
		"unallocated excess should be 97.50, got %s", excess)
}

func TestAllocatePayment_PrincipalClampedAtBalance(t *testing.T) {
	// Payment exceeds interest plus the full balance: principal is clamped
	// and the excess stays unallocated for the caller to handle.
	engine := service.NewAllocationEngine()

	alloc, err := engine.AllocatePayment(
		dec(t, "600.00"), dec(t, "500.00"), dec(t, "0.005"),
		service.AllocationOptions{},
	)
	require.NoError(t, err)

	assert.True(t, alloc.Interest.Equal(dec(t, "2.50")))
	assert.True(t, alloc.Principal.Equal(dec(t, "500.00")),
		"principal should be clamped at the balance, got %s", alloc.Principal)

	excess := engine.ValidateAllocation(alloc, dec(t, "600.00"))
	assert.True(t, excess.Equal(dec(t, "97.50")),
		"unallocated excess should be 97.50, got %s", excess)
}

func TestAllocatePayment_NegativeInputs(t *testing.T) {
	engine := service.NewAllocationEngine()

	_, err := engine.AllocatePayment(dec(t, "-1.00"), dec(t, "100.00"), decimal.Zero, service.AllocationOptions{})
	assert.Error(t, err)

	_, err = engine.AllocatePayment(dec(t, "1.00"), dec(t, "-100.00"), decimal.Zero, service.AllocationOptions{})
	assert.Error(t, err)

	_, err = engine.AllocatePayment(dec(t, "1.00"), dec(t, "100.00"), dec(t, "-0.005"), service.AllocationOptions{})
	assert.Error(t, err)
}

func TestValidateAllocation_DetectsTampering(t *testing.T) {
	engine := service.NewAllocationEngine()

	alloc, err := engine.AllocatePayment(dec(t, "304.22"), dec(t, "10000.00"), dec(t, "0.005"), service.AllocationOptions{})
	require.NoError(t, err)

	tampered := alloc
	tampered.Principal = tampered.Principal.Add(dec(t, "0.01"))

	residual := engine.ValidateAllocation(tampered, dec(t, "304.22"))
	assert.True(t, residual.Equal(dec(t, "-0.01")), "residual = %s, want -0.01", residual)
}
