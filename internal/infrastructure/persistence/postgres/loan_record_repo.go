package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/harborbank/servicing/internal/domain/model"
	"github.com/harborbank/servicing/internal/domain/valueobject"
)

// LoanRecordRepo implements port.LoanRecordRepository.
type LoanRecordRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRecordRepo creates a new PostgreSQL-backed loan record repository.
func NewLoanRecordRepo(pool *pgxpool.Pool) *LoanRecordRepo {
	return &LoanRecordRepo{pool: pool}
}

// Save persists a loan record with optimistic locking on version.
func (r *LoanRecordRepo) Save(ctx context.Context, record model.LoanRecord) error {
	terms := record.Terms()

	var balloonAmount *decimal.Decimal
	var balloonNumber *int
	if b, ok := terms.Balloon(); ok {
		balloonAmount = &b.Amount
		balloonNumber = &b.PaymentNumber
	}

	query := `
		INSERT INTO loan_records (
			id, tenant_id,
			principal, annual_rate, term_months,
			start_date, first_payment_date,
			payment_frequency, loan_type, day_count,
			balloon_amount, balloon_payment_number,
			current_balance, status, fees_due, escrow_due,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE SET
			current_balance = EXCLUDED.current_balance,
			status          = EXCLUDED.status,
			fees_due        = EXCLUDED.fees_due,
			escrow_due      = EXCLUDED.escrow_due,
			version         = loan_records.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE loan_records.version = $17
	`
	tag, err := r.pool.Exec(ctx, query,
		record.ID(), record.TenantID(),
		terms.Principal(), terms.AnnualRate(), terms.TermMonths(),
		terms.StartDate(), terms.FirstPaymentDate(),
		terms.Frequency().String(), terms.LoanType().String(), terms.DayCount().String(),
		balloonAmount, balloonNumber,
		record.CurrentBalance(), record.Status().String(), record.FeesDue(), record.EscrowDue(),
		record.Version(), record.CreatedAt(), record.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on loan record")
	}
	return nil
}

// FindByID retrieves a loan record by tenant and ID.
func (r *LoanRecordRepo) FindByID(ctx context.Context, tenantID, id string) (model.LoanRecord, error) {
	query := `
		SELECT id, tenant_id,
		       principal, annual_rate, term_months,
		       start_date, first_payment_date,
		       payment_frequency, loan_type, day_count,
		       balloon_amount, balloon_payment_number,
		       current_balance, status, fees_due, escrow_due,
		       version, created_at, updated_at
		FROM loan_records
		WHERE tenant_id = $1 AND id = $2
	`
	return scanLoanRecord(r.pool.QueryRow(ctx, query, tenantID, id))
}

// RecordAllocation appends one allocation row to the loan's payment history.
func (r *LoanRecordRepo) RecordAllocation(ctx context.Context, tenantID, loanID string, alloc model.PaymentAllocation) error {
	query := `
		INSERT INTO payment_allocations (
			id, tenant_id, loan_id,
			principal, interest, fees, penalties, escrow, late_fees, other_fees,
			total, allocated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`
	_, err := r.pool.Exec(ctx, query,
		uuid.New().String(), tenantID, loanID,
		alloc.Principal, alloc.Interest, alloc.Fees, alloc.Penalties,
		alloc.Escrow, alloc.LateFees, alloc.OtherFees,
		alloc.Total, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record allocation: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanLoanRecord(s scannable) (model.LoanRecord, error) {
	var (
		id, tenantID                     string
		principal, annualRate            decimal.Decimal
		termMonths                       int
		startDate, firstPaymentDate      time.Time
		frequencyStr, typeStr, dayStr    string
		balloonAmount                    *decimal.Decimal
		balloonNumber                    *int
		currentBalance                   decimal.Decimal
		statusStr                        string
		feesDue, escrowDue               decimal.Decimal
		version                          int
		createdAt, updatedAt             time.Time
	)

	err := s.Scan(
		&id, &tenantID,
		&principal, &annualRate, &termMonths,
		&startDate, &firstPaymentDate,
		&frequencyStr, &typeStr, &dayStr,
		&balloonAmount, &balloonNumber,
		&currentBalance, &statusStr, &feesDue, &escrowDue,
		&version, &createdAt, &updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanRecord{}, model.ErrLoanNotFound
	}
	if err != nil {
		return model.LoanRecord{}, fmt.Errorf("scan loan record: %w", err)
	}

	frequency, err := valueobject.NewPaymentFrequency(frequencyStr)
	if err != nil {
		return model.LoanRecord{}, fmt.Errorf("parse payment frequency: %w", err)
	}
	loanType, err := valueobject.NewLoanType(typeStr)
	if err != nil {
		return model.LoanRecord{}, fmt.Errorf("parse loan type: %w", err)
	}
	dayCount, err := valueobject.NewDayCountConvention(dayStr)
	if err != nil {
		return model.LoanRecord{}, fmt.Errorf("parse day count: %w", err)
	}
	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.LoanRecord{}, fmt.Errorf("parse loan status: %w", err)
	}

	var balloon *model.Balloon
	if balloonAmount != nil && balloonNumber != nil {
		balloon = &model.Balloon{Amount: *balloonAmount, PaymentNumber: *balloonNumber}
	}

	terms, err := model.NewLoanTerms(
		principal, annualRate, termMonths,
		startDate, firstPaymentDate,
		frequency, loanType, dayCount, balloon,
	)
	if err != nil {
		return model.LoanRecord{}, fmt.Errorf("rebuild loan terms: %w", err)
	}

	return model.ReconstructLoanRecord(
		id, tenantID, terms,
		currentBalance, status, feesDue, escrowDue,
		version, createdAt, updatedAt,
	), nil
}
