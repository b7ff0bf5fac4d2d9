package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborbank/servicing/internal/application/dto"
	"github.com/harborbank/servicing/internal/application/usecase"
	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/service"
	"github.com/harborbank/servicing/internal/domain/valueobject"
)

func TestCalculatePayment_Execute(t *testing.T) {
	uc := usecase.NewCalculatePaymentUseCase(service.NewAmortizationEngine(), valueobject.DayCountThirty360)

	t.Run("quotes a standard mortgage", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.CalculatePaymentRequest{
			Principal:  decimal.NewFromInt(200000),
			AnnualRate: decimal.RequireFromString("4.5"),
			TermMonths: 180,
		})

		require.NoError(t, err)
		want := decimal.RequireFromString("1529.99")
		assert.True(t, resp.PaymentAmount.Sub(want).Abs().LessThanOrEqual(decimal.RequireFromString("0.02")),
			"payment %s", resp.PaymentAmount)
		assert.True(t, resp.TotalInterest.GreaterThan(decimal.Zero))
	})

	t.Run("quotes simple interest terms", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.CalculatePaymentRequest{
			Principal:  decimal.NewFromInt(12000),
			AnnualRate: decimal.NewFromInt(6),
			TermMonths: 12,
			LoanType:   "SIMPLE_INTEREST",
		})

		require.NoError(t, err)
		// Level principal of 1000 plus first-period interest of 60.
		want := decimal.RequireFromString("1060.00")
		assert.True(t, want.Equal(resp.PaymentAmount), "payment %s", resp.PaymentAmount)
	})

	t.Run("applies the configured day count convention", func(t *testing.T) {
		// Simple-interest quotes accrue through the calendar policy: a
		// 30/360 month is exactly 1/12 of a year, an actual-days month never
		// is, so the two conventions accrue different total interest.
		actual365 := usecase.NewCalculatePaymentUseCase(service.NewAmortizationEngine(), valueobject.DayCountActual365)

		req := dto.CalculatePaymentRequest{
			Principal:  decimal.NewFromInt(12000),
			AnnualRate: decimal.NewFromInt(6),
			TermMonths: 12,
			LoanType:   "SIMPLE_INTEREST",
		}
		thirty360Resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		actual365Resp, err := actual365.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.False(t, thirty360Resp.TotalInterest.Equal(actual365Resp.TotalInterest),
			"conventions must accrue differently: 30/360 %s, actual/365 %s",
			thirty360Resp.TotalInterest, actual365Resp.TotalInterest)
	})

	t.Run("rejects unknown frequency", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.CalculatePaymentRequest{
			Principal:        decimal.NewFromInt(1000),
			AnnualRate:       decimal.NewFromInt(5),
			TermMonths:       12,
			PaymentFrequency: "FORTNIGHTLY",
		})
		assert.Error(t, err)
	})

	t.Run("rejects non-positive principal", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.CalculatePaymentRequest{
			Principal:  decimal.Zero,
			AnnualRate: decimal.NewFromInt(5),
			TermMonths: 12,
		})
		assert.ErrorIs(t, err, model.ErrInvalidLoanTerms)
	})
}
