// internal/repository/payment_repo.go
package repository

import (
	"context"

	"investrack/internal/domain"
)

// PaymentRepository defines the interface for payment data operations.
type PaymentRepository interface {
	// CreatePayment adds a new payment record using the provided DBExecutor.
	CreatePayment(ctx context.Context, q DBExecutor, payment *domain.Payment) error
	// GetPaymentByID retrieves a payment by its ID using the provided DBExecutor.
	GetPaymentByID(ctx context.Context, q DBExecutor, id int64) (*domain.Payment, error)
	// GetPaymentsByPortfolioID retrieves all payments targeting a portfolio.
	GetPaymentsByPortfolioID(ctx context.Context, q DBExecutor, portfolioID int64) ([]domain.Payment, error)
	// GetPaymentsByFeeID retrieves all payments targeting a verification fee.
	GetPaymentsByFeeID(ctx context.Context, q DBExecutor, feeID int64) ([]domain.Payment, error)
	// MarkVerified flips is_verified from false to true. Returns true when
	// this call performed the transition, false when the payment was already
	// verified. The compare-and-set guards against double crediting.
	MarkVerified(ctx context.Context, q DBExecutor, paymentID int64) (bool, error)
	// MarkUnverified flips is_verified from true to false. Returns true when
	// this call performed the transition.
	MarkUnverified(ctx context.Context, q DBExecutor, paymentID int64) (bool, error)
	// DeletePendingPayment removes the payment only while it is unverified.
	// Returns true when a row was deleted; false means the payment is either
	// absent or already verified, which the caller distinguishes with a read.
	DeletePendingPayment(ctx context.Context, q DBExecutor, paymentID int64) (bool, error)
	// CountVerifiedByFeeID counts verified payments attached to a fee.
	CountVerifiedByFeeID(ctx context.Context, q DBExecutor, feeID int64) (int64, error)
	// CountVerifiedInvestmentsByInvestorID counts verified investment payments
	// across all of an investor's portfolios. Used to detect the first one.
	CountVerifiedInvestmentsByInvestorID(ctx context.Context, q DBExecutor, investorID int64) (int64, error)
}
