// internal/repository/postgres/payment_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/util"
)

const paymentColumns = `id, type, amount, external_ref, deposit_method, receipt_path, portfolio_id, fee_id, is_verified, verified_at, created_at`

// PaymentRepository implements repository.PaymentRepository for PostgreSQL.
type PaymentRepository struct{}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) repository.PaymentRepository {
	return &PaymentRepository{}
}

// CreatePayment inserts a new payment record using the provided DBExecutor.
func (r *PaymentRepository) CreatePayment(ctx context.Context, q repository.DBExecutor, payment *domain.Payment) error {
	query := `INSERT INTO payments (type, amount, external_ref, deposit_method, receipt_path, portfolio_id, fee_id, is_verified, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		payment.Type, payment.Amount, payment.ExternalRef, payment.DepositMethod,
		payment.ReceiptPath, payment.PortfolioID, payment.FeeID, payment.IsVerified, payment.CreatedAt,
	).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetPaymentByID retrieves a payment by its ID using the provided DBExecutor.
func (r *PaymentRepository) GetPaymentByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Payment, error) {
	var payment domain.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	err := q.GetContext(ctx, &payment, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment by ID %d: %w", id, err)
	}
	return &payment, nil
}

// GetPaymentsByPortfolioID retrieves all payments targeting a portfolio.
func (r *PaymentRepository) GetPaymentsByPortfolioID(ctx context.Context, q repository.DBExecutor, portfolioID int64) ([]domain.Payment, error) {
	var payments []domain.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE portfolio_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &payments, query, portfolioID); err != nil {
		return nil, fmt.Errorf("failed to get payments for portfolio %d: %w", portfolioID, err)
	}
	return payments, nil
}

// GetPaymentsByFeeID retrieves all payments targeting a verification fee.
func (r *PaymentRepository) GetPaymentsByFeeID(ctx context.Context, q repository.DBExecutor, feeID int64) ([]domain.Payment, error) {
	var payments []domain.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE fee_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &payments, query, feeID); err != nil {
		return nil, fmt.Errorf("failed to get payments for fee %d: %w", feeID, err)
	}
	return payments, nil
}

// MarkVerified performs the Pending→Verified compare-and-set. Zero rows
// affected means the payment was already verified (or absent); the caller
// distinguishes the two with a read.
func (r *PaymentRepository) MarkVerified(ctx context.Context, q repository.DBExecutor, paymentID int64) (bool, error) {
	query := `UPDATE payments SET is_verified = TRUE, verified_at = $1 WHERE id = $2 AND is_verified = FALSE`
	result, err := q.ExecContext(ctx, query, time.Now().UTC(), paymentID)
	if err != nil {
		return false, fmt.Errorf("failed to mark payment %d verified: %w", paymentID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected verifying payment %d: %w", paymentID, err)
	}
	return rowsAffected == 1, nil
}

// MarkUnverified performs the Verified→Pending compare-and-set.
func (r *PaymentRepository) MarkUnverified(ctx context.Context, q repository.DBExecutor, paymentID int64) (bool, error) {
	query := `UPDATE payments SET is_verified = FALSE, verified_at = NULL WHERE id = $1 AND is_verified = TRUE`
	result, err := q.ExecContext(ctx, query, paymentID)
	if err != nil {
		return false, fmt.Errorf("failed to mark payment %d unverified: %w", paymentID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected unverifying payment %d: %w", paymentID, err)
	}
	return rowsAffected == 1, nil
}

// DeletePendingPayment removes the payment only while it is unverified. The
// guard in the WHERE clause makes a concurrent verify win over the delete.
func (r *PaymentRepository) DeletePendingPayment(ctx context.Context, q repository.DBExecutor, paymentID int64) (bool, error) {
	result, err := q.ExecContext(ctx, `DELETE FROM payments WHERE id = $1 AND is_verified = FALSE`, paymentID)
	if err != nil {
		return false, fmt.Errorf("failed to delete payment %d: %w", paymentID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected deleting payment %d: %w", paymentID, err)
	}
	return rowsAffected == 1, nil
}

// CountVerifiedByFeeID counts verified payments attached to a fee.
func (r *PaymentRepository) CountVerifiedByFeeID(ctx context.Context, q repository.DBExecutor, feeID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM payments WHERE fee_id = $1 AND is_verified = TRUE`
	if err := q.GetContext(ctx, &count, query, feeID); err != nil {
		return 0, fmt.Errorf("failed to count verified payments for fee %d: %w", feeID, err)
	}
	return count, nil
}

// CountVerifiedInvestmentsByInvestorID counts verified investment payments
// across all of an investor's portfolios.
func (r *PaymentRepository) CountVerifiedInvestmentsByInvestorID(ctx context.Context, q repository.DBExecutor, investorID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM payments p
              JOIN portfolios pf ON pf.id = p.portfolio_id
              WHERE pf.investor_id = $1 AND p.type = $2 AND p.is_verified = TRUE`
	if err := q.GetContext(ctx, &count, query, investorID, domain.PaymentTypeInvestment); err != nil {
		return 0, fmt.Errorf("failed to count verified investments for investor %d: %w", investorID, err)
	}
	return count, nil
}
