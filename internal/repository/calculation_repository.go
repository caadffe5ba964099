package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kampanyaradar/loan-offer-service/internal/model"
)

// PoolInterface defines the database operations needed by repositories.
// This allows for easier testing with mocks.
type PoolInterface interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CalculationRepository records loan calculation requests using pgx.
type CalculationRepository struct {
	pool PoolInterface
}

// NewCalculationRepository creates a new CalculationRepository with the given pool.
func NewCalculationRepository(pool *pgxpool.Pool) *CalculationRepository {
	return &CalculationRepository{pool: pool}
}

// NewCalculationRepositoryWithPool creates a new CalculationRepository with a custom pool interface.
// This is primarily used for testing.
func NewCalculationRepositoryWithPool(pool PoolInterface) *CalculationRepository {
	return &CalculationRepository{pool: pool}
}

// Insert stores a calculation and fills in its generated ID and CreatedAt.
func (r *CalculationRepository) Insert(ctx context.Context, calc *model.CalculationLog) error {
	query := `INSERT INTO loan_calculations
		(loan_type, amount, months, bank_ids, offer_count, dropped_count, cached)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	bankIDs := calc.BankIDs
	if bankIDs == nil {
		bankIDs = []int64{}
	}

	err := r.pool.QueryRow(ctx, query,
		calc.LoanType,
		calc.Amount,
		calc.Months,
		bankIDs,
		calc.OfferCount,
		calc.DroppedCount,
		calc.Cached,
	).Scan(&calc.ID, &calc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert loan calculation: %w", err)
	}
	return nil
}

// CountByLoanType returns how many calculations were recorded per loan type.
// On success an empty map (not nil) is returned when the table is empty.
func (r *CalculationRepository) CountByLoanType(ctx context.Context) (map[string]int, error) {
	query := `SELECT loan_type, COUNT(*) FROM loan_calculations GROUP BY loan_type ORDER BY loan_type`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count calculations: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var loanType string
		var count int
		if err := rows.Scan(&loanType, &count); err != nil {
			return nil, fmt.Errorf("scan calculation count: %w", err)
		}
		counts[loanType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculation counts: %w", err)
	}
	return counts, nil
}
