// internal/repository/portfolio_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"investrack/internal/domain"
)

// PortfolioRepository defines the interface for portfolio data operations.
type PortfolioRepository interface {
	// CreatePortfolio adds a new portfolio using the provided DBExecutor.
	CreatePortfolio(ctx context.Context, q DBExecutor, portfolio *domain.Portfolio) error
	// GetPortfolioByID retrieves a portfolio by its ID using the provided DBExecutor.
	GetPortfolioByID(ctx context.Context, q DBExecutor, id int64) (*domain.Portfolio, error)
	// GetPortfoliosByInvestorID retrieves all portfolios for an investor.
	GetPortfoliosByInvestorID(ctx context.Context, q DBExecutor, investorID int64) ([]domain.Portfolio, error)
	// IncrementDeposited atomically adds delta to amount_deposited and stamps
	// last_deposit_at. Delta may be negative when a verification is reversed.
	IncrementDeposited(ctx context.Context, q DBExecutor, portfolioID int64, delta decimal.Decimal) error
}

// CryptoWalletRepository defines the interface for crypto wallet data operations.
type CryptoWalletRepository interface {
	// CreateWallet adds a wallet record using the provided DBExecutor.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.CryptoWallet) error
	// GetWalletByPortfolioID retrieves the wallet for a portfolio, if any.
	GetWalletByPortfolioID(ctx context.Context, q DBExecutor, portfolioID int64) (*domain.CryptoWallet, error)
}
