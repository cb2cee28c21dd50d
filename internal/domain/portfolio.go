// internal/domain/portfolio.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Portfolio represents an investor's stake with one manager. Amount is the
// pledged figure; AmountDeposited only moves through verified payments.
type Portfolio struct {
	ID              int64           `db:"id" json:"id"`
	Reference       string          `db:"reference" json:"reference"` // Unique order reference, UUID string
	InvestorID      int64           `db:"investor_id" json:"investor_id"`
	ManagerID       int64           `db:"manager_id" json:"manager_id"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`                     // Pledged amount, NUMERIC(20, 4) in DB
	AmountDeposited decimal.Decimal `db:"amount_deposited" json:"amount_deposited"` // Sum of verified investment payments
	Earnings        decimal.Decimal `db:"earnings" json:"earnings"`
	LastDepositAt   *time.Time      `db:"last_deposit_at" json:"last_deposit_at,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// NewPortfolio creates a new Portfolio with a fresh order reference and
// nothing deposited yet.
func NewPortfolio(investorID, managerID int64, amount decimal.Decimal) *Portfolio {
	return &Portfolio{
		Reference:       uuid.NewString(),
		InvestorID:      investorID,
		ManagerID:       managerID,
		Amount:          amount,
		AmountDeposited: decimal.Zero,
		Earnings:        decimal.Zero,
		CreatedAt:       time.Now().UTC(),
	}
}

// ExpectedReturn computes the pledged amount grown by the manager's yield:
// amount * (1 + percentageYield/100). Pure, no side effects.
func ExpectedReturn(p *Portfolio, m *Manager) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return p.Amount.Mul(decimal.NewFromInt(1).Add(m.PercentageYield.Div(hundred)))
}
