// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"investrack/internal/domain"
	"investrack/internal/repository"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockTxController satisfies db.TxController and, through the embedded
// executor, repository.DBExecutor — matching what *sqlx.Tx provides.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockInvestorRepository is a mock implementation of repository.InvestorRepository.
type MockInvestorRepository struct {
	mock.Mock
}

func (m *MockInvestorRepository) CreateInvestor(ctx context.Context, q repository.DBExecutor, investor *domain.Investor) error {
	args := m.Called(ctx, q, investor)
	return args.Error(0)
}

func (m *MockInvestorRepository) GetInvestorByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Investor, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investor), args.Error(1)
}

// MockManagerRepository is a mock implementation of repository.ManagerRepository.
type MockManagerRepository struct {
	mock.Mock
}

func (m *MockManagerRepository) GetManagerByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Manager, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Manager), args.Error(1)
}

// MockPortfolioRepository is a mock implementation of repository.PortfolioRepository.
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) CreatePortfolio(ctx context.Context, q repository.DBExecutor, portfolio *domain.Portfolio) error {
	args := m.Called(ctx, q, portfolio)
	return args.Error(0)
}

func (m *MockPortfolioRepository) GetPortfolioByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Portfolio, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) GetPortfoliosByInvestorID(ctx context.Context, q repository.DBExecutor, investorID int64) ([]domain.Portfolio, error) {
	args := m.Called(ctx, q, investorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) IncrementDeposited(ctx context.Context, q repository.DBExecutor, portfolioID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, q, portfolioID, delta)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of repository.PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) CreatePayment(ctx context.Context, q repository.DBExecutor, payment *domain.Payment) error {
	args := m.Called(ctx, q, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetPaymentByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetPaymentsByPortfolioID(ctx context.Context, q repository.DBExecutor, portfolioID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, q, portfolioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetPaymentsByFeeID(ctx context.Context, q repository.DBExecutor, feeID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, q, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) MarkVerified(ctx context.Context, q repository.DBExecutor, paymentID int64) (bool, error) {
	args := m.Called(ctx, q, paymentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) MarkUnverified(ctx context.Context, q repository.DBExecutor, paymentID int64) (bool, error) {
	args := m.Called(ctx, q, paymentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) DeletePendingPayment(ctx context.Context, q repository.DBExecutor, paymentID int64) (bool, error) {
	args := m.Called(ctx, q, paymentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) CountVerifiedByFeeID(ctx context.Context, q repository.DBExecutor, feeID int64) (int64, error) {
	args := m.Called(ctx, q, feeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) CountVerifiedInvestmentsByInvestorID(ctx context.Context, q repository.DBExecutor, investorID int64) (int64, error) {
	args := m.Called(ctx, q, investorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockFeeRepository is a mock implementation of repository.VerificationFeeRepository.
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) CreateFee(ctx context.Context, q repository.DBExecutor, fee *domain.VerificationFee) error {
	args := m.Called(ctx, q, fee)
	return args.Error(0)
}

func (m *MockFeeRepository) GetFeeByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.VerificationFee, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationFee), args.Error(1)
}

func (m *MockFeeRepository) GetFeesByInvestorID(ctx context.Context, q repository.DBExecutor, investorID int64, isPaid *bool) ([]domain.VerificationFee, error) {
	args := m.Called(ctx, q, investorID, isPaid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VerificationFee), args.Error(1)
}

func (m *MockFeeRepository) SetPaid(ctx context.Context, q repository.DBExecutor, feeID int64, isPaid bool) error {
	args := m.Called(ctx, q, feeID, isPaid)
	return args.Error(0)
}

// MockReferralRepository is a mock implementation of repository.ReferralRepository.
type MockReferralRepository struct {
	mock.Mock
}

func (m *MockReferralRepository) CreateReferral(ctx context.Context, q repository.DBExecutor, referral *domain.Referral) error {
	args := m.Called(ctx, q, referral)
	return args.Error(0)
}

func (m *MockReferralRepository) GetReferralByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Referral, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referral), args.Error(1)
}

func (m *MockReferralRepository) GetReferralByReferredID(ctx context.Context, q repository.DBExecutor, referredID int64) (*domain.Referral, error) {
	args := m.Called(ctx, q, referredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Referral), args.Error(1)
}

func (m *MockReferralRepository) GetUnsettledReferrals(ctx context.Context, q repository.DBExecutor) ([]domain.Referral, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Referral), args.Error(1)
}

func (m *MockReferralRepository) GetReferralsByReferrerID(ctx context.Context, q repository.DBExecutor, referrerID int64, settled *bool) ([]domain.Referral, error) {
	args := m.Called(ctx, q, referrerID, settled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Referral), args.Error(1)
}

func (m *MockReferralRepository) SetAmount(ctx context.Context, q repository.DBExecutor, referralID int64, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, q, referralID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferralRepository) Settle(ctx context.Context, q repository.DBExecutor, referralID int64) error {
	args := m.Called(ctx, q, referralID)
	return args.Error(0)
}

// MockCryptoWalletRepository is a mock implementation of repository.CryptoWalletRepository.
type MockCryptoWalletRepository struct {
	mock.Mock
}

func (m *MockCryptoWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.CryptoWallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockCryptoWalletRepository) GetWalletByPortfolioID(ctx context.Context, q repository.DBExecutor, portfolioID int64) (*domain.CryptoWallet, error) {
	args := m.Called(ctx, q, portfolioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CryptoWallet), args.Error(1)
}
