// internal/domain/referral.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Referral is a credit owed to an investor who brought in another investor.
// Amount stays zero until the referred investor's first investment payment is
// verified; Settled flips one way when an operator pays the bonus out.
type Referral struct {
	ID         int64           `db:"id" json:"id"`
	ReferrerID int64           `db:"referrer_id" json:"referrer_id"`
	ReferredID int64           `db:"referred_id" json:"referred_id"`
	Amount     decimal.Decimal `db:"amount" json:"amount"` // NUMERIC(20, 4) in DB
	Settled    bool            `db:"settled" json:"settled"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// NewReferral creates an unsettled referral with no bonus amount yet.
func NewReferral(referrerID, referredID int64) *Referral {
	return &Referral{
		ReferrerID: referrerID,
		ReferredID: referredID,
		Amount:     decimal.Zero,
		CreatedAt:  time.Now().UTC(),
	}
}
