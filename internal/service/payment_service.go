// internal/service/payment_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/storage"
	"investrack/internal/util"
	"investrack/pkg/db"
)

// CreatePaymentInput carries the fields of a proof-of-payment submission.
// Exactly one of PortfolioID and FeeID must be set, matching Type.
type CreatePaymentInput struct {
	Type          domain.PaymentType
	Amount        decimal.Decimal
	ExternalRef   string
	DepositMethod string
	PortfolioID   *int64
	FeeID         *int64
}

// PaymentService is the payment reconciler: it records proof-of-payment
// submissions and is the only writer allowed to move money into a portfolio
// or mark a fee paid.
type PaymentService interface {
	// CreatePayment stores the receipt file, then records a Pending payment.
	CreatePayment(ctx context.Context, input CreatePaymentInput, receiptName string, receipt io.Reader) (*domain.Payment, error)
	// Verify transitions Pending→Verified and, in the same transaction,
	// credits the portfolio or marks the fee paid. Idempotent.
	Verify(ctx context.Context, paymentID int64) (*domain.Payment, error)
	// Unverify is the operator escape hatch: Verified→Pending, reversing the
	// crediting the verification caused. Idempotent.
	Unverify(ctx context.Context, paymentID int64) (*domain.Payment, error)
	// DeletePayment removes a payment while it is still Pending.
	DeletePayment(ctx context.Context, paymentID int64) error
}

type paymentService struct {
	dbBeginner    db.DBTxBeginner
	dbExecutor    repository.DBExecutor
	paymentRepo   repository.PaymentRepository
	portfolioRepo repository.PortfolioRepository
	feeRepo       repository.VerificationFeeRepository
	investorRepo  repository.InvestorRepository
	referralRepo  repository.ReferralRepository
	receipts      *storage.ReceiptStore
	bonusPercent  decimal.Decimal
	beginTx       db.BeginTxFunc
	commitTx      db.CommitTxFunc
	rollbackTx    db.RollbackTxFunc
	logger        *slog.Logger
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	paymentRepo repository.PaymentRepository,
	portfolioRepo repository.PortfolioRepository,
	feeRepo repository.VerificationFeeRepository,
	investorRepo repository.InvestorRepository,
	referralRepo repository.ReferralRepository,
	receipts *storage.ReceiptStore,
	bonusPercent decimal.Decimal,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) PaymentService {
	return &paymentService{
		dbBeginner:    dbBeginner,
		dbExecutor:    dbExecutor,
		paymentRepo:   paymentRepo,
		portfolioRepo: portfolioRepo,
		feeRepo:       feeRepo,
		investorRepo:  investorRepo,
		referralRepo:  referralRepo,
		receipts:      receipts,
		bonusPercent:  bonusPercent,
		beginTx:       beginTx,
		commitTx:      commitTx,
		rollbackTx:    rollbackTx,
		logger:        logger,
	}
}

// CreatePayment validates the submission, writes the receipt file, then
// records the Pending payment. The file write comes first; if the record
// insert fails the orphaned file is logged, not retried.
func (s *paymentService) CreatePayment(ctx context.Context, input CreatePaymentInput, receiptName string, receipt io.Reader) (*domain.Payment, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("create payment: amount must be positive: %w", util.ErrInvalidInput)
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("create payment: unknown payment type %q: %w", input.Type, util.ErrInvalidInput)
	}

	switch input.Type {
	case domain.PaymentTypeInvestment:
		if input.PortfolioID == nil || input.FeeID != nil {
			return nil, fmt.Errorf("create payment: investment payment requires exactly a portfolio target: %w", util.ErrInvalidInput)
		}
		if _, err := s.portfolioRepo.GetPortfolioByID(ctx, s.dbExecutor, *input.PortfolioID); err != nil {
			return nil, fmt.Errorf("create payment: %w", err)
		}
	case domain.PaymentTypeFee:
		if input.FeeID == nil || input.PortfolioID != nil {
			return nil, fmt.Errorf("create payment: fee payment requires exactly a fee target: %w", util.ErrInvalidInput)
		}
		if _, err := s.feeRepo.GetFeeByID(ctx, s.dbExecutor, *input.FeeID); err != nil {
			return nil, fmt.Errorf("create payment: %w", err)
		}
	}

	receiptPath, err := s.receipts.Save(receiptName, receipt)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	var payment *domain.Payment
	if input.Type == domain.PaymentTypeInvestment {
		payment = domain.NewInvestmentPayment(*input.PortfolioID, input.Amount, input.ExternalRef, input.DepositMethod, receiptPath)
	} else {
		payment = domain.NewFeePayment(*input.FeeID, input.Amount, input.ExternalRef, input.DepositMethod, receiptPath)
	}

	if err := s.paymentRepo.CreatePayment(ctx, s.dbExecutor, payment); err != nil {
		s.logger.Warn("payment record insert failed after receipt write, file orphaned",
			"receipt_path", receiptPath, "error", err)
		return nil, fmt.Errorf("create payment: %w", err)
	}

	return payment, nil
}

// Verify moves a payment Pending→Verified and applies its monetary effect in
// one transaction. The compare-and-set on the payment row means a second
// verification, concurrent or not, finds nothing to do and credits nothing.
func (s *paymentService) Verify(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("verify payment: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("verify payment: transaction controller does not implement DBExecutor")
	}

	payment, err := s.paymentRepo.GetPaymentByID(ctx, txExecutor, paymentID)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	transitioned, err := s.paymentRepo.MarkVerified(ctx, txExecutor, paymentID)
	if err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !transitioned {
		// Already verified: idempotent no-op, no second credit.
		return payment, nil
	}

	switch payment.Type {
	case domain.PaymentTypeInvestment:
		if err := s.portfolioRepo.IncrementDeposited(ctx, txExecutor, *payment.PortfolioID, payment.Amount); err != nil {
			return nil, fmt.Errorf("verify payment: %w", err)
		}
		if err := s.maybeGrantReferralBonus(ctx, txExecutor, payment); err != nil {
			return nil, fmt.Errorf("verify payment: %w", err)
		}
	case domain.PaymentTypeFee:
		if err := s.feeRepo.SetPaid(ctx, txExecutor, *payment.FeeID, true); err != nil {
			return nil, fmt.Errorf("verify payment: %w", err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("verify payment: failed to commit transaction: %w", err)
	}

	verified, err := s.paymentRepo.GetPaymentByID(ctx, s.dbExecutor, paymentID)
	if err != nil {
		return nil, fmt.Errorf("verify payment: failed to re-fetch payment %d: %w", paymentID, err)
	}
	return verified, nil
}

// maybeGrantReferralBonus populates the referrer's bonus when this is the
// referred investor's first verified investment payment. The amount guard in
// the repository keeps the grant single-shot under concurrent verifications.
func (s *paymentService) maybeGrantReferralBonus(ctx context.Context, q repository.DBExecutor, payment *domain.Payment) error {
	portfolio, err := s.portfolioRepo.GetPortfolioByID(ctx, q, *payment.PortfolioID)
	if err != nil {
		return err
	}

	referral, err := s.referralRepo.GetReferralByReferredID(ctx, q, portfolio.InvestorID)
	if err != nil {
		if util.IsError(err, util.ErrReferralNotFound) {
			return nil // investor was not referred
		}
		return err
	}
	if !referral.Amount.IsZero() {
		return nil // bonus already granted
	}

	verifiedCount, err := s.paymentRepo.CountVerifiedInvestmentsByInvestorID(ctx, q, portfolio.InvestorID)
	if err != nil {
		return err
	}
	if verifiedCount != 1 {
		// Not the first verified investment; the bonus window has passed.
		return nil
	}

	bonus := payment.Amount.Mul(s.bonusPercent).Div(decimal.NewFromInt(100))
	granted, err := s.referralRepo.SetAmount(ctx, q, referral.ID, bonus)
	if err != nil {
		return err
	}
	if granted {
		s.logger.Info("referral bonus granted",
			"referral_id", referral.ID, "referrer_id", referral.ReferrerID,
			"referred_id", referral.ReferredID, "bonus", bonus)
	}
	return nil
}

// Unverify moves a payment Verified→Pending and reverses the monetary effect
// its verification caused, all in one transaction. Idempotent on Pending
// payments.
func (s *paymentService) Unverify(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("unverify payment: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("unverify payment: transaction controller does not implement DBExecutor")
	}

	payment, err := s.paymentRepo.GetPaymentByID(ctx, txExecutor, paymentID)
	if err != nil {
		return nil, fmt.Errorf("unverify payment: %w", err)
	}

	transitioned, err := s.paymentRepo.MarkUnverified(ctx, txExecutor, paymentID)
	if err != nil {
		return nil, fmt.Errorf("unverify payment: %w", err)
	}
	if !transitioned {
		return payment, nil
	}

	switch payment.Type {
	case domain.PaymentTypeInvestment:
		if err := s.portfolioRepo.IncrementDeposited(ctx, txExecutor, *payment.PortfolioID, payment.Amount.Neg()); err != nil {
			return nil, fmt.Errorf("unverify payment: %w", err)
		}
	case domain.PaymentTypeFee:
		// Re-derive the paid flag from the remaining verified payments.
		remaining, err := s.paymentRepo.CountVerifiedByFeeID(ctx, txExecutor, *payment.FeeID)
		if err != nil {
			return nil, fmt.Errorf("unverify payment: %w", err)
		}
		if err := s.feeRepo.SetPaid(ctx, txExecutor, *payment.FeeID, remaining > 0); err != nil {
			return nil, fmt.Errorf("unverify payment: %w", err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("unverify payment: failed to commit transaction: %w", err)
	}

	unverified, err := s.paymentRepo.GetPaymentByID(ctx, s.dbExecutor, paymentID)
	if err != nil {
		return nil, fmt.Errorf("unverify payment: failed to re-fetch payment %d: %w", paymentID, err)
	}
	return unverified, nil
}

// DeletePayment removes a Pending payment and its receipt file. Deleting a
// Verified payment is a conflict; the guard lives in the DELETE itself so a
// concurrent verification wins.
func (s *paymentService) DeletePayment(ctx context.Context, paymentID int64) error {
	payment, err := s.paymentRepo.GetPaymentByID(ctx, s.dbExecutor, paymentID)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if payment.IsVerified {
		return fmt.Errorf("delete payment %d: %w", paymentID, util.ErrPaymentVerified)
	}

	deleted, err := s.paymentRepo.DeletePendingPayment(ctx, s.dbExecutor, paymentID)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if !deleted {
		// Lost the race: either verified in between, or gone.
		current, err := s.paymentRepo.GetPaymentByID(ctx, s.dbExecutor, paymentID)
		if err != nil {
			return fmt.Errorf("delete payment: %w", err)
		}
		if current.IsVerified {
			return fmt.Errorf("delete payment %d: %w", paymentID, util.ErrPaymentVerified)
		}
		return fmt.Errorf("delete payment %d: %w", paymentID, util.ErrPaymentNotFound)
	}

	if err := s.receipts.Remove(payment.ReceiptPath); err != nil {
		s.logger.Warn("failed to remove receipt of deleted payment",
			"payment_id", paymentID, "receipt_path", payment.ReceiptPath, "error", err)
	}
	return nil
}
