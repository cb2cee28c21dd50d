// internal/service/portfolio_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/util"
	"investrack/pkg/db"
)

// PortfolioDetail is a portfolio with its related records resolved, as
// served by the investment detail endpoint.
type PortfolioDetail struct {
	Portfolio domain.Portfolio     `json:"portfolio"`
	Manager   domain.Manager       `json:"manager"`
	Payments  []domain.Payment     `json:"payments"`
	Wallet    *domain.CryptoWallet `json:"wallet,omitempty"`
}

// PortfolioService owns the portfolio ledger: pledged amount, deposited
// amount and accrued earnings.
type PortfolioService interface {
	// CreatePortfolio opens a portfolio for an investment request, provisioning
	// a crypto wallet when one is requested.
	CreatePortfolio(ctx context.Context, investorID, managerID int64, amount decimal.Decimal, wallet *WalletRequest) (*domain.Portfolio, error)
	// GetPortfolio returns the portfolio with its manager, payments and wallet.
	GetPortfolio(ctx context.Context, id int64) (*PortfolioDetail, error)
	// CreditDeposit atomically adds a verified amount to a portfolio's
	// deposited total. Normally reached through payment verification.
	CreditDeposit(ctx context.Context, portfolioID int64, amount decimal.Decimal) error
	// Eligibility evaluates withdrawal eligibility for a portfolio as of now.
	Eligibility(ctx context.Context, portfolioID int64, now time.Time) (*WithdrawalEligibility, error)
}

type portfolioService struct {
	dbBeginner    db.DBTxBeginner
	dbExecutor    repository.DBExecutor
	investorRepo  repository.InvestorRepository
	managerRepo   repository.ManagerRepository
	portfolioRepo repository.PortfolioRepository
	paymentRepo   repository.PaymentRepository
	feeRepo       repository.VerificationFeeRepository
	walletRepo    repository.CryptoWalletRepository
	provisioner   CryptoWalletProvisioner
	beginTx       db.BeginTxFunc
	commitTx      db.CommitTxFunc
	rollbackTx    db.RollbackTxFunc
}

// NewPortfolioService creates a new instance of PortfolioService.
func NewPortfolioService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	investorRepo repository.InvestorRepository,
	managerRepo repository.ManagerRepository,
	portfolioRepo repository.PortfolioRepository,
	paymentRepo repository.PaymentRepository,
	feeRepo repository.VerificationFeeRepository,
	walletRepo repository.CryptoWalletRepository,
	provisioner CryptoWalletProvisioner,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) PortfolioService {
	return &portfolioService{
		dbBeginner:    dbBeginner,
		dbExecutor:    dbExecutor,
		investorRepo:  investorRepo,
		managerRepo:   managerRepo,
		portfolioRepo: portfolioRepo,
		paymentRepo:   paymentRepo,
		feeRepo:       feeRepo,
		walletRepo:    walletRepo,
		provisioner:   provisioner,
		beginTx:       beginTx,
		commitTx:      commitTx,
		rollbackTx:    rollbackTx,
	}
}

// CreatePortfolio validates the request against the manager's terms and
// opens the portfolio, plus its crypto wallet when funding is a
// cryptocurrency, in a single transaction.
func (s *portfolioService) CreatePortfolio(ctx context.Context, investorID, managerID int64, amount decimal.Decimal, wallet *WalletRequest) (*domain.Portfolio, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create portfolio: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create portfolio: transaction controller does not implement DBExecutor")
	}

	if _, err := s.investorRepo.GetInvestorByID(ctx, txExecutor, investorID); err != nil {
		return nil, fmt.Errorf("create portfolio: %w", err)
	}

	manager, err := s.managerRepo.GetManagerByID(ctx, txExecutor, managerID)
	if err != nil {
		return nil, fmt.Errorf("create portfolio: %w", err)
	}
	if amount.LessThan(manager.MinimumInvestment) {
		return nil, fmt.Errorf("create portfolio: amount %s below minimum %s: %w",
			amount, manager.MinimumInvestment, util.ErrBelowMinimumInvestment)
	}

	portfolio := domain.NewPortfolio(investorID, managerID, amount)
	if err := s.portfolioRepo.CreatePortfolio(ctx, txExecutor, portfolio); err != nil {
		return nil, fmt.Errorf("create portfolio: %w", err)
	}

	if wallet != nil {
		if _, err := s.provisioner.Provision(ctx, txExecutor, portfolio.ID, *wallet); err != nil {
			return nil, fmt.Errorf("create portfolio: %w", err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create portfolio: failed to commit transaction: %w", err)
	}

	return portfolio, nil
}

// GetPortfolio returns the portfolio with its manager, payment history and
// wallet, if one was provisioned.
func (s *portfolioService) GetPortfolio(ctx context.Context, id int64) (*PortfolioDetail, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get portfolio: %w", err)
	}

	manager, err := s.managerRepo.GetManagerByID(ctx, s.dbExecutor, portfolio.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("get portfolio: %w", err)
	}

	payments, err := s.paymentRepo.GetPaymentsByPortfolioID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get portfolio: %w", err)
	}

	detail := &PortfolioDetail{
		Portfolio: *portfolio,
		Manager:   *manager,
		Payments:  payments,
	}

	cryptoWallet, err := s.walletRepo.GetWalletByPortfolioID(ctx, s.dbExecutor, id)
	switch {
	case err == nil:
		detail.Wallet = cryptoWallet
	case util.IsError(err, util.ErrNotFound):
		// No wallet means fiat funding.
	default:
		return nil, fmt.Errorf("get portfolio: %w", err)
	}

	return detail, nil
}

// CreditDeposit atomically increments a portfolio's deposited amount. The
// increment is a single UPDATE so concurrent credits cannot lose a write.
func (s *portfolioService) CreditDeposit(ctx context.Context, portfolioID int64, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return util.ErrInvalidInput
	}
	if err := s.portfolioRepo.IncrementDeposited(ctx, s.dbExecutor, portfolioID, amount); err != nil {
		return fmt.Errorf("credit deposit: %w", err)
	}
	return nil
}

// Eligibility reads the portfolio, the manager's terms and the investor's
// unpaid fees, then hands them to the pure calculator.
func (s *portfolioService) Eligibility(ctx context.Context, portfolioID int64, now time.Time) (*WithdrawalEligibility, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioByID(ctx, s.dbExecutor, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("eligibility: %w", err)
	}

	manager, err := s.managerRepo.GetManagerByID(ctx, s.dbExecutor, portfolio.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("eligibility: %w", err)
	}

	isPaid := false
	unpaidFees, err := s.feeRepo.GetFeesByInvestorID(ctx, s.dbExecutor, portfolio.InvestorID, &isPaid)
	if err != nil {
		return nil, fmt.Errorf("eligibility: %w", err)
	}

	result := EvaluateWithdrawal(portfolio, manager, unpaidFees, now)
	return &result, nil
}
