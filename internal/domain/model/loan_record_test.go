package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/valueobject"
)

func newRecord(t *testing.T) model.LoanRecord {
	t.Helper()
	terms := newTerms(t, "10000.00", "6.0", 36)
	record, err := model.NewLoanRecord("tenant-001", terms, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return record
}

func TestNewLoanRecord(t *testing.T) {
	record := newRecord(t)

	assert.NotEmpty(t, record.ID())
	assert.Equal(t, "tenant-001", record.TenantID())
	assert.True(t, record.CurrentBalance().Equal(decimal.RequireFromString("10000.00")),
		"balance must start at principal, got %s", record.CurrentBalance())
	assert.True(t, record.Status().Equal(valueobject.LoanStatusActive))
	assert.Equal(t, 1, record.Version())
	assert.Empty(t, record.DomainEvents())
}

func TestNewLoanRecord_RequiresTenant(t *testing.T) {
	terms := newTerms(t, "10000.00", "6.0", 36)
	_, err := model.NewLoanRecord("", terms, time.Now().UTC())
	assert.Error(t, err)
}

func TestApplyAllocation_ReducesBalance(t *testing.T) {
	record := newRecord(t)
	now := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

	alloc := model.PaymentAllocation{
		Principal: decimal.RequireFromString("254.22"),
		Interest:  decimal.RequireFromString("50.00"),
		Total:     decimal.RequireFromString("304.22"),
	}
	next, err := record.ApplyAllocation(alloc, now)
	require.NoError(t, err)

	assert.True(t, next.CurrentBalance().Equal(decimal.RequireFromString("9745.78")),
		"got %s", next.CurrentBalance())
	assert.True(t, next.Status().Equal(valueobject.LoanStatusActive))
	require.Len(t, next.DomainEvents(), 1)
	assert.Equal(t, "servicing.payment.allocated", next.DomainEvents()[0].EventType())

	// The original aggregate is untouched.
	assert.True(t, record.CurrentBalance().Equal(decimal.RequireFromString("10000.00")))
	assert.Empty(t, record.DomainEvents())
}

func TestApplyAllocation_PayoffEmitsLoanPaidOff(t *testing.T) {
	record := newRecord(t)
	now := time.Now().UTC()

	alloc := model.PaymentAllocation{
		Principal: decimal.RequireFromString("10000.00"),
		Interest:  decimal.RequireFromString("50.00"),
		Total:     decimal.RequireFromString("10050.00"),
	}
	next, err := record.ApplyAllocation(alloc, now)
	require.NoError(t, err)

	assert.True(t, next.CurrentBalance().IsZero())
	assert.True(t, next.Status().Equal(valueobject.LoanStatusPaidOff))
	require.Len(t, next.DomainEvents(), 2)
	assert.Equal(t, "servicing.payment.allocated", next.DomainEvents()[0].EventType())
	assert.Equal(t, "servicing.loan.paid_off", next.DomainEvents()[1].EventType())
}

func TestApplyAllocation_Rejections(t *testing.T) {
	record := newRecord(t)
	now := time.Now().UTC()

	t.Run("principal beyond balance", func(t *testing.T) {
		_, err := record.ApplyAllocation(model.PaymentAllocation{
			Principal: decimal.RequireFromString("10000.01"),
			Total:     decimal.RequireFromString("10000.01"),
		}, now)
		assert.Error(t, err)
	})

	t.Run("non-positive total", func(t *testing.T) {
		_, err := record.ApplyAllocation(model.PaymentAllocation{
			Total: decimal.Zero,
		}, now)
		assert.Error(t, err)
	})

	t.Run("paid off loan", func(t *testing.T) {
		paidOff, err := record.ApplyAllocation(model.PaymentAllocation{
			Principal: decimal.RequireFromString("10000.00"),
			Total:     decimal.RequireFromString("10000.00"),
		}, now)
		require.NoError(t, err)

		_, err = paidOff.ApplyAllocation(model.PaymentAllocation{
			Principal: decimal.RequireFromString("1.00"),
			Total:     decimal.RequireFromString("1.00"),
		}, now)
		assert.Error(t, err)
	})
}

func TestMarkDelinquent(t *testing.T) {
	record := newRecord(t)
	now := time.Now().UTC()

	delinquent, err := record.MarkDelinquent(now)
	require.NoError(t, err)
	assert.True(t, delinquent.Status().Equal(valueobject.LoanStatusDelinquent))
	assert.True(t, delinquent.Status().AcceptsPayments())

	_, err = delinquent.MarkDelinquent(now)
	assert.Error(t, err, "delinquent loans cannot become delinquent again")
}

func TestClearEvents(t *testing.T) {
	record := newRecord(t)
	next, err := record.ApplyAllocation(model.PaymentAllocation{
		Principal: decimal.RequireFromString("100.00"),
		Total:     decimal.RequireFromString("100.00"),
	}, time.Now().UTC())
	require.NoError(t, err)
	require.NotEmpty(t, next.DomainEvents())

	cleared := next.ClearEvents()
	assert.Empty(t, cleared.DomainEvents())
	assert.True(t, cleared.CurrentBalance().Equal(next.CurrentBalance()))
}
