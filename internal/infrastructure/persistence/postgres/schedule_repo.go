package postgres

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/channeling-service/internal/domain/model"
	"github.com/bibbank/bib/services/channeling-service/internal/domain/valueobject"
	pkgpostgres "github.com/bibbank/bib/services/channeling-service/pkg/postgres"
)

var scheduleColumns = []string{
	"id", "loan_id", "payment_id", "installment_number", "channeling_type", "due_date",
	"due_amount", "principal_amount", "interest_amount", "actual_daily_interest", "outstanding_principal",
}

// ScheduleRepo implements port.ScheduleRepository.
type ScheduleRepo struct {
	pool *pgxpool.Pool
}

// NewScheduleRepo creates a new PostgreSQL-backed schedule repository.
func NewScheduleRepo(pool *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{pool: pool}
}

// ReplaceForLoan swaps the loan's stored rows for entries in a single
// transaction. Rows are bulk-loaded with COPY.
func (r *ScheduleRepo) ReplaceForLoan(ctx context.Context, loanID string, entries []model.ScheduleEntry) error {
	rows := make([][]any, len(entries))
	for i, e := range entries {
		rows[i] = []any{
			uuid.New(), loanID, e.PaymentID, i + 1, e.ChannelingType.String(), e.DueDate.In(time.UTC),
			e.DueAmount, e.PrincipalAmount, e.InterestAmount, e.ActualDailyInterest, e.OutstandingPrincipal,
		}
	}

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM channeling_loan_payments WHERE loan_id = $1`, loanID); err != nil {
			return fmt.Errorf("delete schedule: %w", err)
		}

		n, err := tx.CopyFrom(ctx, pgx.Identifier{"channeling_loan_payments"}, scheduleColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("copy schedule rows: %w", err)
		}
		if n != int64(len(rows)) {
			return fmt.Errorf("copy schedule rows: wrote %d of %d", n, len(rows))
		}
		return nil
	})
}

// FindByLoanID returns the stored rows in installment order. A loan without
// a schedule yields an empty slice.
func (r *ScheduleRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.ScheduleEntry, error) {
	query := `
		SELECT payment_id, channeling_type, due_date,
		       due_amount, principal_amount, interest_amount,
		       actual_daily_interest, outstanding_principal
		FROM channeling_loan_payments
		WHERE loan_id = $1
		ORDER BY installment_number
	`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var entries []model.ScheduleEntry
	for rows.Next() {
		e, err := scanScheduleEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanScheduleEntry(s pgx.Row) (model.ScheduleEntry, error) {
	var (
		paymentID, channelingType                  string
		dueDate                                    time.Time
		due, principal, interest, adi, outstanding decimal.Decimal
	)
	if err := s.Scan(&paymentID, &channelingType, &dueDate, &due, &principal, &interest, &adi, &outstanding); err != nil {
		return model.ScheduleEntry{}, fmt.Errorf("scan schedule entry: %w", err)
	}

	ct, err := valueobject.NewChannelingType(channelingType)
	if err != nil {
		return model.ScheduleEntry{}, fmt.Errorf("parse channeling type: %w", err)
	}

	return model.ScheduleEntry{
		PaymentID:            paymentID,
		DueDate:              civil.DateOf(dueDate),
		ChannelingType:       ct,
		DueAmount:            due,
		PrincipalAmount:      principal,
		InterestAmount:       interest,
		ActualDailyInterest:  adi,
		OutstandingPrincipal: outstanding,
	}, nil
}
