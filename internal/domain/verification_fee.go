// internal/domain/verification_fee.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationFee is a charge an investor must settle before withdrawal is
// permitted. IsPaid is derived from its payments' verification state: the
// reconciler sets it when a fee payment is verified and re-derives it when
// one is unverified, so the flag cannot drift from the payment history.
type VerificationFee struct {
	ID         int64           `db:"id" json:"id"`
	InvestorID int64           `db:"investor_id" json:"investor_id"`
	Name       string          `db:"name" json:"name"`
	Amount     decimal.Decimal `db:"amount" json:"amount"` // NUMERIC(20, 4) in DB
	IsPaid     bool            `db:"is_paid" json:"is_paid"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`

	// Payments attached to this fee; populated on detail reads only.
	Payments []Payment `db:"-" json:"payments,omitempty"`
}

// NewVerificationFee creates an unpaid fee for an investor.
func NewVerificationFee(investorID int64, name string, amount decimal.Decimal) *VerificationFee {
	return &VerificationFee{
		InvestorID: investorID,
		Name:       name,
		Amount:     amount,
		CreatedAt:  time.Now().UTC(),
	}
}
