// internal/repository/postgres/portfolio_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/util"
)

// pqUniqueViolation is the Postgres error code for unique constraint violations.
const pqUniqueViolation = "23505"

// PortfolioRepository implements repository.PortfolioRepository for PostgreSQL.
type PortfolioRepository struct{}

// NewPortfolioRepository creates a new PortfolioRepository.
func NewPortfolioRepository(db *sqlx.DB) repository.PortfolioRepository {
	return &PortfolioRepository{}
}

// CreatePortfolio inserts a new portfolio using the provided DBExecutor.
// A unique index on (investor_id, manager_id) keeps the crediting path's
// one-portfolio-per-pair assumption true.
func (r *PortfolioRepository) CreatePortfolio(ctx context.Context, q repository.DBExecutor, portfolio *domain.Portfolio) error {
	query := `INSERT INTO portfolios (reference, investor_id, manager_id, amount, amount_deposited, earnings, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		portfolio.Reference, portfolio.InvestorID, portfolio.ManagerID,
		portfolio.Amount, portfolio.AmountDeposited, portfolio.Earnings, portfolio.CreatedAt,
	).Scan(&portfolio.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return util.ErrDuplicatePortfolio
		}
		return fmt.Errorf("failed to create portfolio: %w", err)
	}
	return nil
}

// GetPortfolioByID retrieves a portfolio by its ID using the provided DBExecutor.
func (r *PortfolioRepository) GetPortfolioByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Portfolio, error) {
	var portfolio domain.Portfolio
	query := `SELECT id, reference, investor_id, manager_id, amount, amount_deposited, earnings, last_deposit_at, created_at
              FROM portfolios WHERE id = $1`
	err := q.GetContext(ctx, &portfolio, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio by ID %d: %w", id, err)
	}
	return &portfolio, nil
}

// GetPortfoliosByInvestorID retrieves all portfolios for an investor.
func (r *PortfolioRepository) GetPortfoliosByInvestorID(ctx context.Context, q repository.DBExecutor, investorID int64) ([]domain.Portfolio, error) {
	var portfolios []domain.Portfolio
	query := `SELECT id, reference, investor_id, manager_id, amount, amount_deposited, earnings, last_deposit_at, created_at
              FROM portfolios WHERE investor_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &portfolios, query, investorID); err != nil {
		return nil, fmt.Errorf("failed to get portfolios for investor %d: %w", investorID, err)
	}
	return portfolios, nil
}

// IncrementDeposited atomically adjusts amount_deposited. The increment
// happens inside the UPDATE so concurrent verifications cannot lose a write.
func (r *PortfolioRepository) IncrementDeposited(ctx context.Context, q repository.DBExecutor, portfolioID int64, delta decimal.Decimal) error {
	query := `UPDATE portfolios SET amount_deposited = amount_deposited + $1, last_deposit_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), portfolioID)
	if err != nil {
		return fmt.Errorf("failed to adjust deposited amount for portfolio %d: %w", portfolioID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected adjusting portfolio %d: %w", portfolioID, err)
	}
	if rowsAffected == 0 {
		return util.ErrPortfolioNotFound
	}
	return nil
}

// CryptoWalletRepository implements repository.CryptoWalletRepository for PostgreSQL.
type CryptoWalletRepository struct{}

// NewCryptoWalletRepository creates a new CryptoWalletRepository.
func NewCryptoWalletRepository(db *sqlx.DB) repository.CryptoWalletRepository {
	return &CryptoWalletRepository{}
}

// CreateWallet inserts a wallet record. The portfolio_id unique constraint
// enforces the one-to-one relationship.
func (r *CryptoWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.CryptoWallet) error {
	query := `INSERT INTO crypto_wallets (portfolio_id, currency, investor_source_address, platform_receiving_address, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		wallet.PortfolioID, wallet.Currency, wallet.InvestorSourceAddress, wallet.PlatformReceivingAddress, wallet.CreatedAt,
	).Scan(&wallet.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return util.ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create crypto wallet: %w", err)
	}
	return nil
}

// GetWalletByPortfolioID retrieves the wallet for a portfolio.
func (r *CryptoWalletRepository) GetWalletByPortfolioID(ctx context.Context, q repository.DBExecutor, portfolioID int64) (*domain.CryptoWallet, error) {
	var wallet domain.CryptoWallet
	query := `SELECT id, portfolio_id, currency, investor_source_address, platform_receiving_address, created_at
              FROM crypto_wallets WHERE portfolio_id = $1`
	err := q.GetContext(ctx, &wallet, query, portfolioID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get crypto wallet for portfolio %d: %w", portfolioID, err)
	}
	return &wallet, nil
}
