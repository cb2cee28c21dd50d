// internal/repository/postgres/referral_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/util"
)

const referralColumns = `id, referrer_id, referred_id, amount, settled, created_at`

// ReferralRepository implements repository.ReferralRepository for PostgreSQL.
type ReferralRepository struct{}

// NewReferralRepository creates a new ReferralRepository.
func NewReferralRepository(db *sqlx.DB) repository.ReferralRepository {
	return &ReferralRepository{}
}

// CreateReferral inserts a new referral using the provided DBExecutor.
// The unique index on referred_id limits each investor to one referral row.
func (r *ReferralRepository) CreateReferral(ctx context.Context, q repository.DBExecutor, referral *domain.Referral) error {
	query := `INSERT INTO referrals (referrer_id, referred_id, amount, settled, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		referral.ReferrerID, referral.ReferredID, referral.Amount, referral.Settled, referral.CreatedAt,
	).Scan(&referral.ID)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

// GetReferralByID retrieves a referral by its ID.
func (r *ReferralRepository) GetReferralByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Referral, error) {
	var referral domain.Referral
	query := `SELECT ` + referralColumns + ` FROM referrals WHERE id = $1`
	err := q.GetContext(ctx, &referral, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrReferralNotFound
		}
		return nil, fmt.Errorf("failed to get referral by ID %d: %w", id, err)
	}
	return &referral, nil
}

// GetReferralByReferredID retrieves the referral naming this investor as the
// referred party.
func (r *ReferralRepository) GetReferralByReferredID(ctx context.Context, q repository.DBExecutor, referredID int64) (*domain.Referral, error) {
	var referral domain.Referral
	query := `SELECT ` + referralColumns + ` FROM referrals WHERE referred_id = $1`
	err := q.GetContext(ctx, &referral, query, referredID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrReferralNotFound
		}
		return nil, fmt.Errorf("failed to get referral for referred investor %d: %w", referredID, err)
	}
	return &referral, nil
}

// GetUnsettledReferrals retrieves all referrals with settled=false.
func (r *ReferralRepository) GetUnsettledReferrals(ctx context.Context, q repository.DBExecutor) ([]domain.Referral, error) {
	var referrals []domain.Referral
	query := `SELECT ` + referralColumns + ` FROM referrals WHERE settled = FALSE ORDER BY created_at`
	if err := q.SelectContext(ctx, &referrals, query); err != nil {
		return nil, fmt.Errorf("failed to get unsettled referrals: %w", err)
	}
	return referrals, nil
}

// GetReferralsByReferrerID retrieves referrals credited to an investor,
// optionally filtered by settled state.
func (r *ReferralRepository) GetReferralsByReferrerID(ctx context.Context, q repository.DBExecutor, referrerID int64, settled *bool) ([]domain.Referral, error) {
	var referrals []domain.Referral
	if settled == nil {
		query := `SELECT ` + referralColumns + ` FROM referrals WHERE referrer_id = $1 ORDER BY created_at`
		if err := q.SelectContext(ctx, &referrals, query, referrerID); err != nil {
			return nil, fmt.Errorf("failed to get referrals for referrer %d: %w", referrerID, err)
		}
		return referrals, nil
	}
	query := `SELECT ` + referralColumns + ` FROM referrals WHERE referrer_id = $1 AND settled = $2 ORDER BY created_at`
	if err := q.SelectContext(ctx, &referrals, query, referrerID, *settled); err != nil {
		return nil, fmt.Errorf("failed to get referrals for referrer %d: %w", referrerID, err)
	}
	return referrals, nil
}

// SetAmount assigns the bonus amount, only while it is still zero. The guard
// makes the bonus grant first-verification-wins under concurrency.
func (r *ReferralRepository) SetAmount(ctx context.Context, q repository.DBExecutor, referralID int64, amount decimal.Decimal) (bool, error) {
	query := `UPDATE referrals SET amount = $1 WHERE id = $2 AND amount = 0`
	result, err := q.ExecContext(ctx, query, amount, referralID)
	if err != nil {
		return false, fmt.Errorf("failed to set amount on referral %d: %w", referralID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected updating referral %d: %w", referralID, err)
	}
	return rowsAffected == 1, nil
}

// Settle sets settled=true. Settling an already-settled referral affects the
// row again with the same value, which is the idempotence the caller wants.
func (r *ReferralRepository) Settle(ctx context.Context, q repository.DBExecutor, referralID int64) error {
	result, err := q.ExecContext(ctx, `UPDATE referrals SET settled = TRUE WHERE id = $1`, referralID)
	if err != nil {
		return fmt.Errorf("failed to settle referral %d: %w", referralID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected settling referral %d: %w", referralID, err)
	}
	if rowsAffected == 0 {
		return util.ErrReferralNotFound
	}
	return nil
}
