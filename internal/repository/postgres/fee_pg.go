// internal/repository/postgres/fee_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/util"
)

// VerificationFeeRepository implements repository.VerificationFeeRepository for PostgreSQL.
type VerificationFeeRepository struct{}

// NewVerificationFeeRepository creates a new VerificationFeeRepository.
func NewVerificationFeeRepository(db *sqlx.DB) repository.VerificationFeeRepository {
	return &VerificationFeeRepository{}
}

// CreateFee inserts a new verification fee using the provided DBExecutor.
func (r *VerificationFeeRepository) CreateFee(ctx context.Context, q repository.DBExecutor, fee *domain.VerificationFee) error {
	query := `INSERT INTO verification_fees (investor_id, name, amount, is_paid, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query, fee.InvestorID, fee.Name, fee.Amount, fee.IsPaid, fee.CreatedAt).Scan(&fee.ID)
	if err != nil {
		return fmt.Errorf("failed to create verification fee: %w", err)
	}
	return nil
}

// GetFeeByID retrieves a fee by its ID using the provided DBExecutor.
func (r *VerificationFeeRepository) GetFeeByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.VerificationFee, error) {
	var fee domain.VerificationFee
	query := `SELECT id, investor_id, name, amount, is_paid, created_at FROM verification_fees WHERE id = $1`
	err := q.GetContext(ctx, &fee, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrFeeNotFound
		}
		return nil, fmt.Errorf("failed to get verification fee by ID %d: %w", id, err)
	}
	return &fee, nil
}

// GetFeesByInvestorID retrieves fees for an investor, optionally filtered by
// paid state.
func (r *VerificationFeeRepository) GetFeesByInvestorID(ctx context.Context, q repository.DBExecutor, investorID int64, isPaid *bool) ([]domain.VerificationFee, error) {
	var fees []domain.VerificationFee
	if isPaid == nil {
		query := `SELECT id, investor_id, name, amount, is_paid, created_at FROM verification_fees
                  WHERE investor_id = $1 ORDER BY created_at`
		if err := q.SelectContext(ctx, &fees, query, investorID); err != nil {
			return nil, fmt.Errorf("failed to get fees for investor %d: %w", investorID, err)
		}
		return fees, nil
	}
	query := `SELECT id, investor_id, name, amount, is_paid, created_at FROM verification_fees
              WHERE investor_id = $1 AND is_paid = $2 ORDER BY created_at`
	if err := q.SelectContext(ctx, &fees, query, investorID, *isPaid); err != nil {
		return nil, fmt.Errorf("failed to get fees for investor %d: %w", investorID, err)
	}
	return fees, nil
}

// SetPaid updates the fee's is_paid flag.
func (r *VerificationFeeRepository) SetPaid(ctx context.Context, q repository.DBExecutor, feeID int64, isPaid bool) error {
	result, err := q.ExecContext(ctx, `UPDATE verification_fees SET is_paid = $1 WHERE id = $2`, isPaid, feeID)
	if err != nil {
		return fmt.Errorf("failed to set paid=%t on fee %d: %w", isPaid, feeID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected updating fee %d: %w", feeID, err)
	}
	if rowsAffected == 0 {
		return util.ErrFeeNotFound
	}
	return nil
}
