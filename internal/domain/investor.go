// internal/domain/investor.go
package domain

import "time"

// Investor represents a platform user who places funds with managers.
// Authentication and KYC document capture happen elsewhere; only the
// verified flag and the referral parent matter to this service.
type Investor struct {
	ID          int64     `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"full_name"`
	Email       string    `db:"email" json:"email"`
	KYCVerified bool      `db:"kyc_verified" json:"kyc_verified"`
	ReferredBy  *int64    `db:"referred_by" json:"referred_by,omitempty"` // Referrer's investor ID, nil when self-registered
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// NewInvestor creates a new Investor instance.
func NewInvestor(fullName, email string, referredBy *int64) *Investor {
	return &Investor{
		FullName:   fullName,
		Email:      email,
		ReferredBy: referredBy,
		CreatedAt:  time.Now().UTC(),
	}
}
