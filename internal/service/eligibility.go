// internal/service/eligibility.go
package service

import (
	"time"

	"github.com/shopspring/decimal"

	"investrack/internal/domain"
)

// WithdrawalEligibility is the result of evaluating a portfolio against its
// manager's terms and the investor's outstanding fees.
type WithdrawalEligibility struct {
	CanWithdraw          bool            `json:"can_withdraw"`
	RequiresVerification bool            `json:"requires_verification"` // Matured but blocked on unpaid fees
	DaysLeft             int             `json:"days_left"`
	MaturityDate         time.Time       `json:"maturity_date"`
	TotalEarnings        decimal.Decimal `json:"total_earnings"`
}

// EvaluateWithdrawal derives a withdrawal decision from the portfolio, the
// manager's terms and the investor's unpaid fees. Pure: no persistence, no
// side effects, safe to call on every page load.
func EvaluateWithdrawal(p *domain.Portfolio, m *domain.Manager, unpaidFees []domain.VerificationFee, now time.Time) WithdrawalEligibility {
	maturityDate := p.CreatedAt.Add(m.Term())
	isMatured := !now.Before(maturityDate)

	daysLeft := 0
	if remaining := maturityDate.Sub(now); remaining > 0 {
		daysLeft = int((remaining + 24*time.Hour - time.Nanosecond) / (24 * time.Hour)) // ceiling
	}

	return WithdrawalEligibility{
		CanWithdraw:          isMatured && len(unpaidFees) == 0,
		RequiresVerification: isMatured && len(unpaidFees) > 0,
		DaysLeft:             daysLeft,
		MaturityDate:         maturityDate,
		TotalEarnings:        domain.ExpectedReturn(p, m),
	}
}
