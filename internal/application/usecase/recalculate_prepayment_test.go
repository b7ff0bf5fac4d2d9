package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborbank/servicing/internal/application/dto"
	"github.com/harborbank/servicing/internal/application/usecase"
	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/service"
	"github.com/harborbank/servicing/internal/domain/valueobject"
)

func mortgageRecord(t *testing.T) model.LoanRecord {
	t.Helper()
	terms, err := model.NewLoanTerms(
		decimal.NewFromInt(185000), decimal.NewFromInt(5), 240,
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), time.Time{},
		valueobject.PaymentFrequency{}, valueobject.LoanType{}, valueobject.DayCountConvention{}, nil,
	)
	require.NoError(t, err)
	return activeLoanRecord(t, terms)
}

func TestRecalculatePrepayment_Execute(t *testing.T) {
	engine := service.NewAmortizationEngine()
	calculator := service.NewPrepaymentCalculator()

	t.Run("reduce term shortens the loan and saves interest", func(t *testing.T) {
		record := mortgageRecord(t)
		loanRepo := &mockLoanRecordRepository{
			findByIDFunc: func(ctx context.Context, tenantID, id string) (model.LoanRecord, error) {
				return record, nil
			},
		}
		publisher := &mockServicingEventPublisher{}

		uc := usecase.NewRecalculatePrepaymentUseCase(loanRepo, engine, calculator, publisher)

		resp, err := uc.Execute(context.Background(), dto.RecalculatePrepaymentRequest{
			TenantID:         "tenant-001",
			LoanID:           record.ID(),
			PrepaymentAmount: decimal.NewFromInt(5000),
			PrepaymentType:   "REDUCE_TERM",
		})

		require.NoError(t, err)
		assert.Equal(t, 240, resp.OriginalTerm)
		assert.Less(t, resp.NewTerm, 240)
		assert.Equal(t, resp.OriginalTerm-resp.NewTerm, resp.TermReduction)
		assert.True(t, resp.OriginalPayment.Equal(resp.NewPayment))
		assert.True(t, resp.InterestSavings.GreaterThan(decimal.Zero), "savings %s", resp.InterestSavings)

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "servicing.prepayment.evaluated", publisher.publishedEvents[0].EventType())
	})

	t.Run("reduce payment keeps the term", func(t *testing.T) {
		record := mortgageRecord(t)
		loanRepo := &mockLoanRecordRepository{
			findByIDFunc: func(ctx context.Context, tenantID, id string) (model.LoanRecord, error) {
				return record, nil
			},
		}

		uc := usecase.NewRecalculatePrepaymentUseCase(loanRepo, engine, calculator, &mockServicingEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.RecalculatePrepaymentRequest{
			TenantID:         "tenant-001",
			LoanID:           record.ID(),
			PrepaymentAmount: decimal.NewFromInt(5000),
			PrepaymentType:   "REDUCE_PAYMENT",
		})

		require.NoError(t, err)
		assert.Equal(t, resp.OriginalTerm, resp.NewTerm)
		assert.True(t, resp.NewPayment.LessThan(resp.OriginalPayment))
		assert.True(t, resp.PaymentReduction.GreaterThan(decimal.Zero))
	})

	t.Run("rejects unknown prepayment type", func(t *testing.T) {
		record := mortgageRecord(t)
		loanRepo := &mockLoanRecordRepository{
			findByIDFunc: func(ctx context.Context, tenantID, id string) (model.LoanRecord, error) {
				return record, nil
			},
		}

		uc := usecase.NewRecalculatePrepaymentUseCase(loanRepo, engine, calculator, &mockServicingEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RecalculatePrepaymentRequest{
			TenantID:         "tenant-001",
			LoanID:           record.ID(),
			PrepaymentAmount: decimal.NewFromInt(5000),
			PrepaymentType:   "CRYSTAL_BALL",
		})

		assert.Error(t, err)
	})

	t.Run("prepayment exceeding balance fails", func(t *testing.T) {
		record := mortgageRecord(t)
		loanRepo := &mockLoanRecordRepository{
			findByIDFunc: func(ctx context.Context, tenantID, id string) (model.LoanRecord, error) {
				return record, nil
			},
		}

		uc := usecase.NewRecalculatePrepaymentUseCase(loanRepo, engine, calculator, &mockServicingEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RecalculatePrepaymentRequest{
			TenantID:         "tenant-001",
			LoanID:           record.ID(),
			PrepaymentAmount: decimal.NewFromInt(200000),
			PrepaymentType:   "REDUCE_TERM",
		})

		assert.ErrorIs(t, err, model.ErrInvalidPrepayment)
	})
}
