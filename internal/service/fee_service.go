// internal/service/fee_service.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/util"
	"investrack/pkg/db"
)

// FeeService is the verification-fee gate: it tracks charges an investor
// must settle before withdrawal. Paying happens through the payment
// reconciler; this service only creates and reads fees.
type FeeService interface {
	// CreateFee opens an unpaid fee for an investor.
	CreateFee(ctx context.Context, investorID int64, name string, amount decimal.Decimal) (*domain.VerificationFee, error)
	// GetFee returns a fee with its attached payments.
	GetFee(ctx context.Context, feeID int64) (*domain.VerificationFee, error)
	// ListUnpaid returns the investor's fees with is_paid=false.
	ListUnpaid(ctx context.Context, investorID int64) ([]domain.VerificationFee, error)
	// ListByInvestor returns all of the investor's fees.
	ListByInvestor(ctx context.Context, investorID int64) ([]domain.VerificationFee, error)
}

type feeService struct {
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	feeRepo      repository.VerificationFeeRepository
	paymentRepo  repository.PaymentRepository
	investorRepo repository.InvestorRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewFeeService creates a new instance of FeeService.
func NewFeeService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	feeRepo repository.VerificationFeeRepository,
	paymentRepo repository.PaymentRepository,
	investorRepo repository.InvestorRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) FeeService {
	return &feeService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		feeRepo:      feeRepo,
		paymentRepo:  paymentRepo,
		investorRepo: investorRepo,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
	}
}

// CreateFee validates the investor exists and opens an unpaid fee.
func (s *feeService) CreateFee(ctx context.Context, investorID int64, name string, amount decimal.Decimal) (*domain.VerificationFee, error) {
	if name == "" || amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create fee: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create fee: transaction controller does not implement DBExecutor")
	}

	if _, err := s.investorRepo.GetInvestorByID(ctx, txExecutor, investorID); err != nil {
		return nil, fmt.Errorf("create fee: %w", err)
	}

	fee := domain.NewVerificationFee(investorID, name, amount)
	if err := s.feeRepo.CreateFee(ctx, txExecutor, fee); err != nil {
		return nil, fmt.Errorf("create fee: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create fee: failed to commit transaction: %w", err)
	}
	return fee, nil
}

// GetFee returns a fee with its payment history attached.
func (s *feeService) GetFee(ctx context.Context, feeID int64) (*domain.VerificationFee, error) {
	fee, err := s.feeRepo.GetFeeByID(ctx, s.dbExecutor, feeID)
	if err != nil {
		return nil, fmt.Errorf("get fee: %w", err)
	}
	payments, err := s.paymentRepo.GetPaymentsByFeeID(ctx, s.dbExecutor, feeID)
	if err != nil {
		return nil, fmt.Errorf("get fee: %w", err)
	}
	fee.Payments = payments
	return fee, nil
}

// ListUnpaid returns the fees blocking the investor's withdrawals.
func (s *feeService) ListUnpaid(ctx context.Context, investorID int64) ([]domain.VerificationFee, error) {
	isPaid := false
	fees, err := s.feeRepo.GetFeesByInvestorID(ctx, s.dbExecutor, investorID, &isPaid)
	if err != nil {
		return nil, fmt.Errorf("list unpaid fees: %w", err)
	}
	return fees, nil
}

// ListByInvestor returns all the investor's fees, paid or not.
func (s *feeService) ListByInvestor(ctx context.Context, investorID int64) ([]domain.VerificationFee, error) {
	fees, err := s.feeRepo.GetFeesByInvestorID(ctx, s.dbExecutor, investorID, nil)
	if err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	return fees, nil
}
