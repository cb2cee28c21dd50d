// internal/service/payment_service_test.go
package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"investrack/internal/domain"
	"investrack/internal/storage"
	"investrack/internal/util"
	"investrack/pkg/db"
)

// paymentServiceFixture bundles the payment service under test with its mocks.
type paymentServiceFixture struct {
	svc           PaymentService
	tx            *MockTxController
	executor      *MockDBExecutor
	paymentRepo   *MockPaymentRepository
	portfolioRepo *MockPortfolioRepository
	feeRepo       *MockFeeRepository
	referralRepo  *MockReferralRepository
	receiptDir    string
}

func newPaymentServiceFixture(t *testing.T) *paymentServiceFixture {
	t.Helper()

	f := &paymentServiceFixture{
		tx:            new(MockTxController),
		executor:      new(MockDBExecutor),
		paymentRepo:   new(MockPaymentRepository),
		portfolioRepo: new(MockPortfolioRepository),
		feeRepo:       new(MockFeeRepository),
		referralRepo:  new(MockReferralRepository),
		receiptDir:    t.TempDir(),
	}

	receipts, err := storage.NewReceiptStore(f.receiptDir)
	require.NoError(t, err)

	beginTx := func(ctx context.Context, conn db.DBTxBeginner) (db.TxController, error) {
		return f.tx, nil
	}

	f.svc = NewPaymentService(
		nil, // transactions come from the injected beginTx
		f.executor,
		f.paymentRepo,
		f.portfolioRepo,
		f.feeRepo,
		new(MockInvestorRepository),
		f.referralRepo,
		receipts,
		decimal.NewFromInt(5),
		beginTx,
		db.CommitTx,
		db.RollbackTx,
		slog.New(slog.NewTextHandler(os.Stderr, nil)),
	)
	return f
}

func pendingInvestmentPayment(id, portfolioID int64, amount decimal.Decimal) *domain.Payment {
	p := domain.NewInvestmentPayment(portfolioID, amount, "TX-REF-001", "BANK", "uploads/receipts/r.png")
	p.ID = id
	return p
}

func TestVerifyInvestmentPayment_CreditsPortfolioOnce(t *testing.T) {
	f := newPaymentServiceFixture(t)
	amount := decimal.NewFromInt(1000)
	payment := pendingInvestmentPayment(7, 3, amount)
	portfolio := domain.NewPortfolio(11, 2, decimal.NewFromInt(5000))
	portfolio.ID = 3

	f.paymentRepo.On("GetPaymentByID", mock.Anything, mock.Anything, int64(7)).Return(payment, nil)
	f.paymentRepo.On("MarkVerified", mock.Anything, mock.Anything, int64(7)).Return(true, nil)
	f.portfolioRepo.On("IncrementDeposited", mock.Anything, mock.Anything, int64(3), amount).Return(nil)
	f.portfolioRepo.On("GetPortfolioByID", mock.Anything, mock.Anything, int64(3)).Return(portfolio, nil)
	f.referralRepo.On("GetReferralByReferredID", mock.Anything, mock.Anything, int64(11)).Return(nil, util.ErrReferralNotFound)
	f.tx.On("Commit").Return(nil)
	f.tx.On("Rollback").Return(nil)

	result, err := f.svc.Verify(context.Background(), 7)

	require.NoError(t, err)
	assert.NotNil(t, result)
	f.portfolioRepo.AssertNumberOfCalls(t, "IncrementDeposited", 1)
	f.tx.AssertCalled(t, "Commit")
}

func TestVerifyPayment_AlreadyVerifiedIsNoOp(t *testing.T) {
	f := newPaymentServiceFixture(t)
	payment := pendingInvestmentPayment(7, 3, decimal.NewFromInt(1000))
	payment.IsVerified = true

	f.paymentRepo.On("GetPaymentByID", mock.Anything, mock.Anything, int64(7)).Return(payment, nil)
	f.paymentRepo.On("MarkVerified", mock.Anything, mock.Anything, int64(7)).Return(false, nil)
	f.tx.On("Rollback").Return(nil)

	result, err := f.svc.Verify(context.Background(), 7)

	require.NoError(t, err)
	assert.True(t, result.IsVerified)
	// The second verification must not credit again.
	f.portfolioRepo.AssertNotCalled(t, "IncrementDeposited", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.tx.AssertNotCalled(t, "Commit")
}

func TestVerifyFeePayment_MarksFeePaid(t *testing.T) {
	f := newPaymentServiceFixture(t)
	feeID := int64(9)
	payment := domain.NewFeePayment(feeID, decimal.NewFromInt(50), "TX-REF-002", "BANK", "uploads/receipts/f.png")
	payment.ID = 8

	f.paymentRepo.On("GetPaymentByID", mock.Anything, mock.Anything, int64(8)).Return(payment, nil)
	f.paymentRepo.On("MarkVerified", mock.Anything, mock.Anything, int64(8)).Return(true, nil)
	f.feeRepo.On("SetPaid", mock.Anything, mock.Anything, feeID, true).Return(nil)
	f.tx.On("Commit").Return(nil)
	f.tx.On("Rollback").Return(nil)

	_, err := f.svc.Verify(context.Background(), 8)

	require.NoError(t, err)
	f.feeRepo.AssertCalled(t, "SetPaid", mock.Anything, mock.Anything, feeID, true)
	f.portfolioRepo.AssertNotCalled(t, "IncrementDeposited", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyFirstInvestment_GrantsReferralBonus(t *testing.T) {
	f := newPaymentServiceFixture(t)
	amount := decimal.NewFromInt(2000)
	payment := pendingInvestmentPayment(7, 3, amount)
	portfolio := domain.NewPortfolio(11, 2, decimal.NewFromInt(5000))
	portfolio.ID = 3
	referral := domain.NewReferral(4, 11)
	referral.ID = 15

	f.paymentRepo.On("GetPaymentByID", mock.Anything, mock.Anything, int64(7)).Return(payment, nil)
	f.paymentRepo.On("MarkVerified", mock.Anything, mock.Anything, int64(7)).Return(true, nil)
	f.portfolioRepo.On("IncrementDeposited", mock.Anything, mock.Anything, int64(3), amount).Return(nil)
	f.portfolioRepo.On("GetPortfolioByID", mock.Anything, mock.Anything, int64(3)).Return(portfolio, nil)
	f.referralRepo.On("GetReferralByReferredID", mock.Anything, mock.Anything, int64(11)).Return(referral, nil)
	f.paymentRepo.On("CountVerifiedInvestmentsByInvestorID", mock.Anything, mock.Anything, int64(11)).Return(int64(1), nil)
	// 5% of 2000
	expectedBonus := mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(100))
	})
	f.referralRepo.On("SetAmount", mock.Anything, mock.Anything, int64(15), expectedBonus).Return(true, nil)
	f.tx.On("Commit").Return(nil)
	f.tx.On("Rollback").Return(nil)

	_, err := f.svc.Verify(context.Background(), 7)

	require.NoError(t, err)
	f.referralRepo.AssertNumberOfCalls(t, "SetAmount", 1)
}

func TestVerifyLaterInvestment_DoesNotGrantBonus(t *testing.T) {
	f := newPaymentServiceFixture(t)
	amount := decimal.NewFromInt(2000)
	payment := pendingInvestmentPayment(7, 3, amount)
	portfolio := domain.NewPortfolio(11, 2, decimal.NewFromInt(5000))
	portfolio.ID = 3
	referral := domain.NewReferral(4, 11)
	referral.ID = 15

	f.paymentRepo.On("GetPaymentByID", mock.Anything, mock.Anything, int64(7)).Return(payment, nil)
	f.paymentRepo.On("MarkVerified", mock.Anything, mock.Anything, int64(7)).Return(true, nil)
	f.portfolioRepo.On("IncrementDeposited", mock.Anything, mock.Anything, int64(3), amount).Return(nil)
	f.portfolioRepo.On("GetPortfolioByID", mock.Anything, mock.Anything, int64(3)).Return(portfolio, nil)
	f.referralRepo.On("GetReferralByReferredID", mock.Anything, mock.Anything, int64(11)).Return(referral, nil)
	f.paymentRepo.On("CountVerifiedInvestmentsByInvestorID", mock.Anything, mock.Anything, int64(11)).Return(int64(3), nil)
	f.tx.On("Commit").Return(nil)
	f.tx.On("Rollback").Return(nil)

	_, err := f.svc.Verify(context.Background(), 7)

	require.NoError(t, err)
	f.referralRepo.AssertNotCalled(t, "SetAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUnverifyInvestmentPayment_ReversesCredit(t *testing.T) {
	f := newPaymentServiceFixture(t)
	amount := decimal.NewFromInt(1000)
	payment := pendingInvestmentPayment(7, 3, amount)
	payment.IsVerified = true

	f.paymentRepo.On("GetPaymentByID", mock.Anything, mock.Anything, int64(7)).Return(payment, nil)
	f.paymentRepo.On("MarkUnverified", mock.Anything, mock.Anything, int64(7)).Return(true, nil)
	f.portfolioRepo.On("IncrementDeposited", mock.Anything, mock.Anything, int64(3), amount.Neg()).Return(nil)
	f.tx.On("Commit").Return(nil)
	f.tx.On("Rollback").Return(nil)

	_, err := f.svc.Unverify(context.Background(), 7)

	require.NoError(t, err)
	f.portfolioRepo.AssertCalled(t, "IncrementDeposited", mock.Anything, mock.Anything, int64(3), amount.Neg())
}

func TestUnverifyFeePayment_RederivesPaidFlag(t *testing.T) {
	f := newPaymentServiceFixture(t)
	feeID := int64(9)
	payment := domain.NewFeePayment(feeID, decimal.NewFromInt(50), "TX-REF-002", "BANK", "uploads/receipts/f.png")
	payment.ID = 8
	payment.IsVerified = true

	f.paymentRepo.On("GetPaymentByID", mock.Anything, mock.Anything, int64(8)).Return(payment, nil)
	f.paymentRepo.On("MarkUnverified", mock.Anything, mock.Anything, int64(8)).Return(true, nil)
	f.paymentRepo.On("CountVerifiedByFeeID", mock.Anything, mock.Anything, feeID).Return(int64(0), nil)
	f.feeRepo.On("SetPaid", mock.Anything, mock.Anything, feeID, false).Return(nil)
	f.tx.On("Commit").Return(nil)
	f.tx.On("Rollback").Return(nil)

	_, err := f.svc.Unverify(context.Background(), 8)

	require.NoError(t, err)
	f.feeRepo.AssertCalled(t, "SetPaid", mock.Anything, mock.Anything, feeID, false)
}

func TestDeleteVerifiedPayment_Conflict(t *testing.T) {
	f := newPaymentServiceFixture(t)
	payment := pendingInvestmentPayment(7, 3, decimal.NewFromInt(1000))
	payment.IsVerified = true

	f.paymentRepo.On("GetPaymentByID", mock.Anything, mock.Anything, int64(7)).Return(payment, nil)

	err := f.svc.DeletePayment(context.Background(), 7)

	assert.ErrorIs(t, err, util.ErrPaymentVerified)
	f.paymentRepo.AssertNotCalled(t, "DeletePendingPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeletePendingPayment_RemovesRowAndReceipt(t *testing.T) {
	f := newPaymentServiceFixture(t)

	receiptPath := filepath.Join(f.receiptDir, "r.png")
	require.NoError(t, os.WriteFile(receiptPath, []byte("receipt"), 0o644))

	payment := pendingInvestmentPayment(7, 3, decimal.NewFromInt(1000))
	payment.ReceiptPath = receiptPath

	f.paymentRepo.On("GetPaymentByID", mock.Anything, mock.Anything, int64(7)).Return(payment, nil)
	f.paymentRepo.On("DeletePendingPayment", mock.Anything, mock.Anything, int64(7)).Return(true, nil)

	err := f.svc.DeletePayment(context.Background(), 7)

	require.NoError(t, err)
	_, statErr := os.Stat(receiptPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreatePayment_Validation(t *testing.T) {
	f := newPaymentServiceFixture(t)
	portfolioID := int64(3)
	feeID := int64(9)

	cases := []struct {
		name  string
		input CreatePaymentInput
	}{
		{"zero amount", CreatePaymentInput{Type: domain.PaymentTypeInvestment, Amount: decimal.Zero, PortfolioID: &portfolioID}},
		{"negative amount", CreatePaymentInput{Type: domain.PaymentTypeInvestment, Amount: decimal.NewFromInt(-5), PortfolioID: &portfolioID}},
		{"unknown type", CreatePaymentInput{Type: "REFUND", Amount: decimal.NewFromInt(10)}},
		{"investment without portfolio", CreatePaymentInput{Type: domain.PaymentTypeInvestment, Amount: decimal.NewFromInt(10)}},
		{"investment with fee target", CreatePaymentInput{Type: domain.PaymentTypeInvestment, Amount: decimal.NewFromInt(10), PortfolioID: &portfolioID, FeeID: &feeID}},
		{"fee without fee target", CreatePaymentInput{Type: domain.PaymentTypeFee, Amount: decimal.NewFromInt(10)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreatePayment(context.Background(), tc.input, "r.png", strings.NewReader("receipt"))
			assert.ErrorIs(t, err, util.ErrInvalidInput)
		})
	}
}

func TestCreateInvestmentPayment_StoresReceiptAndRecord(t *testing.T) {
	f := newPaymentServiceFixture(t)
	portfolioID := int64(3)
	portfolio := domain.NewPortfolio(11, 2, decimal.NewFromInt(5000))
	portfolio.ID = portfolioID

	f.portfolioRepo.On("GetPortfolioByID", mock.Anything, mock.Anything, portfolioID).Return(portfolio, nil)
	f.paymentRepo.On("CreatePayment", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)

	payment, err := f.svc.CreatePayment(context.Background(), CreatePaymentInput{
		Type:          domain.PaymentTypeInvestment,
		Amount:        decimal.NewFromInt(1000),
		ExternalRef:   "TX-REF-003",
		DepositMethod: "BANK",
		PortfolioID:   &portfolioID,
	}, "proof.png", strings.NewReader("receipt-bytes"))

	require.NoError(t, err)
	assert.False(t, payment.IsVerified)
	assert.Equal(t, domain.PaymentTypeInvestment, payment.Type)

	content, err := os.ReadFile(payment.ReceiptPath)
	require.NoError(t, err)
	assert.Equal(t, "receipt-bytes", string(content))
	assert.Equal(t, ".png", filepath.Ext(payment.ReceiptPath))
}
