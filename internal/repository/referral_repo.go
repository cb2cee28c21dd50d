// internal/repository/referral_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"investrack/internal/domain"
)

// ReferralRepository defines the interface for referral data operations.
type ReferralRepository interface {
	// CreateReferral adds a new referral using the provided DBExecutor.
	CreateReferral(ctx context.Context, q DBExecutor, referral *domain.Referral) error
	// GetReferralByID retrieves a referral by its ID.
	GetReferralByID(ctx context.Context, q DBExecutor, id int64) (*domain.Referral, error)
	// GetReferralByReferredID retrieves the referral naming this investor as
	// the referred party, if one exists.
	GetReferralByReferredID(ctx context.Context, q DBExecutor, referredID int64) (*domain.Referral, error)
	// GetUnsettledReferrals retrieves all referrals with settled=false.
	GetUnsettledReferrals(ctx context.Context, q DBExecutor) ([]domain.Referral, error)
	// GetReferralsByReferrerID retrieves referrals credited to an investor,
	// optionally filtered by settled state (nil means no filter).
	GetReferralsByReferrerID(ctx context.Context, q DBExecutor, referrerID int64, settled *bool) ([]domain.Referral, error)
	// SetAmount assigns the bonus amount, only while it is still zero.
	// Returns true when the amount was written.
	SetAmount(ctx context.Context, q DBExecutor, referralID int64, amount decimal.Decimal) (bool, error)
	// Settle sets settled=true. Idempotent at the SQL level.
	Settle(ctx context.Context, q DBExecutor, referralID int64) error
}
