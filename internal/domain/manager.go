// internal/domain/manager.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Manager represents a fund manager an investor can place money with.
// Its terms (yield, duration) drive the withdrawal eligibility calculation.
type Manager struct {
	ID                int64           `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	MinimumInvestment decimal.Decimal `db:"minimum_investment" json:"minimum_investment"` // NUMERIC(20, 4) in DB
	PercentageYield   decimal.Decimal `db:"percentage_yield" json:"percentage_yield"`     // NUMERIC(7, 4), e.g. 8.5 means 8.5%
	DurationDays      int             `db:"duration_days" json:"duration_days"`           // Investment term; the unit is days, always
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

// Term returns the manager's investment term as a typed duration.
// The stored integer is days; converting here keeps the unit decision
// in one place instead of at every call site.
func (m *Manager) Term() time.Duration {
	return time.Duration(m.DurationDays) * 24 * time.Hour
}
