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

func TestAllocatePayment_Execute(t *testing.T) {
	engine := service.NewAllocationEngine()

	t.Run("allocates interest first then principal", func(t *testing.T) {
		terms := testTerms(t) // 10000 at 6% -> periodic rate 0.005
		record := activeLoanRecord(t, terms)
		loanRepo := &mockLoanRecordRepository{
			findByIDFunc: func(ctx context.Context, tenantID, id string) (model.LoanRecord, error) {
				return record, nil
			},
		}
		publisher := &mockServicingEventPublisher{}

		uc := usecase.NewAllocatePaymentUseCase(loanRepo, engine, publisher, service.ResidualToPrincipal)

		resp, err := uc.Execute(context.Background(), dto.AllocatePaymentRequest{
			TenantID: "tenant-001",
			LoanID:   "loan-001",
			Amount:   decimal.RequireFromString("304.22"),
		})

		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("50.00").Equal(resp.Interest), "interest %s", resp.Interest)
		assert.True(t, decimal.RequireFromString("254.22").Equal(resp.Principal), "principal %s", resp.Principal)
		assert.True(t, resp.Unallocated.IsZero())
		assert.True(t, decimal.RequireFromString("9745.78").Equal(resp.RemainingBalance), "balance %s", resp.RemainingBalance)
		assert.Equal(t, "ACTIVE", resp.LoanStatus)

		require.Len(t, loanRepo.savedRecords, 1)
		require.Len(t, loanRepo.allocations, 1)
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, "servicing.payment.allocated", publisher.publishedEvents[0].EventType())
	})

	t.Run("fees due on the record ride the waterfall", func(t *testing.T) {
		terms := testTerms(t)
		now := time.Now().UTC()
		record := model.ReconstructLoanRecord(
			"loan-002", "tenant-001", terms,
			terms.Principal(), valueobject.LoanStatusActive,
			decimal.RequireFromString("35.00"), decimal.Zero,
			1, now, now,
		)
		loanRepo := &mockLoanRecordRepository{
			findByIDFunc: func(ctx context.Context, tenantID, id string) (model.LoanRecord, error) {
				return record, nil
			},
		}

		uc := usecase.NewAllocatePaymentUseCase(loanRepo, engine, &mockServicingEventPublisher{}, service.ResidualToPrincipal)

		resp, err := uc.Execute(context.Background(), dto.AllocatePaymentRequest{
			TenantID: "tenant-001",
			LoanID:   "loan-002",
			Amount:   decimal.RequireFromString("304.22"),
		})

		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("50.00").Equal(resp.Interest))
		assert.True(t, decimal.RequireFromString("35.00").Equal(resp.Fees))
		assert.True(t, decimal.RequireFromString("219.22").Equal(resp.Principal), "principal %s", resp.Principal)
	})

	t.Run("paid off loan rejects payments", func(t *testing.T) {
		terms := testTerms(t)
		now := time.Now().UTC()
		record := model.ReconstructLoanRecord(
			"loan-003", "tenant-001", terms,
			decimal.Zero, valueobject.LoanStatusPaidOff,
			decimal.Zero, decimal.Zero,
			1, now, now,
		)
		loanRepo := &mockLoanRecordRepository{
			findByIDFunc: func(ctx context.Context, tenantID, id string) (model.LoanRecord, error) {
				return record, nil
			},
		}

		uc := usecase.NewAllocatePaymentUseCase(loanRepo, engine, &mockServicingEventPublisher{}, service.ResidualToPrincipal)

		_, err := uc.Execute(context.Background(), dto.AllocatePaymentRequest{
			TenantID: "tenant-001",
			LoanID:   "loan-003",
			Amount:   decimal.NewFromInt(100),
		})

		assert.ErrorContains(t, err, "does not accept payments")
	})

	t.Run("final payment pays off the loan", func(t *testing.T) {
		terms := testTerms(t)
		now := time.Now().UTC()
		record := model.ReconstructLoanRecord(
			"loan-004", "tenant-001", terms,
			decimal.RequireFromString("100.00"), valueobject.LoanStatusActive,
			decimal.Zero, decimal.Zero,
			1, now, now,
		)
		loanRepo := &mockLoanRecordRepository{
			findByIDFunc: func(ctx context.Context, tenantID, id string) (model.LoanRecord, error) {
				return record, nil
			},
		}
		publisher := &mockServicingEventPublisher{}

		uc := usecase.NewAllocatePaymentUseCase(loanRepo, engine, publisher, service.ResidualToPrincipal)

		// 0.50 interest on the residual balance plus the full principal.
		resp, err := uc.Execute(context.Background(), dto.AllocatePaymentRequest{
			TenantID: "tenant-001",
			LoanID:   "loan-004",
			Amount:   decimal.RequireFromString("100.50"),
		})

		require.NoError(t, err)
		assert.True(t, resp.RemainingBalance.IsZero())
		assert.Equal(t, "PAID_OFF", resp.LoanStatus)

		require.Len(t, publisher.publishedEvents, 2)
		assert.Equal(t, "servicing.loan.paid_off", publisher.publishedEvents[1].EventType())
	})
}
