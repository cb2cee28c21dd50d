// internal/domain/payment.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType says what a payment settles: an investment deposit into a
// portfolio, or a verification fee.
type PaymentType string

const (
	PaymentTypeInvestment PaymentType = "INVESTMENT"
	PaymentTypeFee        PaymentType = "FEE"
)

// Valid reports whether t is one of the two known payment types.
func (t PaymentType) Valid() bool {
	return t == PaymentTypeInvestment || t == PaymentTypeFee
}

// Payment is a single proof-of-funds submission. Exactly one of PortfolioID
// and FeeID is set, according to Type. A payment is Pending until an operator
// verifies it; verification is what moves money.
type Payment struct {
	ID            int64           `db:"id" json:"id"`
	Type          PaymentType     `db:"type" json:"type"`
	Amount        decimal.Decimal `db:"amount" json:"amount"` // NUMERIC(20, 4) in DB
	ExternalRef   string          `db:"external_ref" json:"external_ref"` // Investor-supplied payment ID from their bank/exchange
	DepositMethod string          `db:"deposit_method" json:"deposit_method"`
	ReceiptPath   string          `db:"receipt_path" json:"receipt_path"` // Stored outside the DB, referenced by path
	PortfolioID   *int64          `db:"portfolio_id" json:"portfolio_id,omitempty"`
	FeeID         *int64          `db:"fee_id" json:"fee_id,omitempty"`
	IsVerified    bool            `db:"is_verified" json:"is_verified"`
	VerifiedAt    *time.Time      `db:"verified_at" json:"verified_at,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// NewInvestmentPayment creates a Pending payment targeting a portfolio.
func NewInvestmentPayment(portfolioID int64, amount decimal.Decimal, externalRef, depositMethod, receiptPath string) *Payment {
	return &Payment{
		Type:          PaymentTypeInvestment,
		Amount:        amount,
		ExternalRef:   externalRef,
		DepositMethod: depositMethod,
		ReceiptPath:   receiptPath,
		PortfolioID:   &portfolioID,
		CreatedAt:     time.Now().UTC(),
	}
}

// NewFeePayment creates a Pending payment targeting a verification fee.
func NewFeePayment(feeID int64, amount decimal.Decimal, externalRef, depositMethod, receiptPath string) *Payment {
	return &Payment{
		Type:          PaymentTypeFee,
		Amount:        amount,
		ExternalRef:   externalRef,
		DepositMethod: depositMethod,
		ReceiptPath:   receiptPath,
		FeeID:         &feeID,
		CreatedAt:     time.Now().UTC(),
	}
}
