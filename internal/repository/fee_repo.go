// internal/repository/fee_repo.go
package repository

import (
	"context"

	"investrack/internal/domain"
)

// VerificationFeeRepository defines the interface for verification fee data operations.
type VerificationFeeRepository interface {
	// CreateFee adds a new verification fee using the provided DBExecutor.
	CreateFee(ctx context.Context, q DBExecutor, fee *domain.VerificationFee) error
	// GetFeeByID retrieves a fee by its ID using the provided DBExecutor.
	GetFeeByID(ctx context.Context, q DBExecutor, id int64) (*domain.VerificationFee, error)
	// GetFeesByInvestorID retrieves fees for an investor, optionally filtered
	// by paid state (nil means no filter).
	GetFeesByInvestorID(ctx context.Context, q DBExecutor, investorID int64, isPaid *bool) ([]domain.VerificationFee, error)
	// SetPaid updates the fee's is_paid flag.
	SetPaid(ctx context.Context, q DBExecutor, feeID int64, isPaid bool) error
}
