// internal/util/errors.go
package util

import "errors"

// Common application-specific errors. Services return these (possibly
// wrapped); the HTTP boundary translates them to status codes.
var (
	ErrInvalidInput = errors.New("invalid input provided")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflicting state")

	ErrInvestorNotFound  = errors.New("investor not found")
	ErrManagerNotFound   = errors.New("manager not found")
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrFeeNotFound       = errors.New("verification fee not found")
	ErrReferralNotFound  = errors.New("referral not found")

	ErrBelowMinimumInvestment = errors.New("amount below manager minimum investment")
	ErrPaymentVerified        = errors.New("payment is already verified")
	ErrDuplicateWallet        = errors.New("portfolio already has a crypto wallet")
	ErrDuplicatePortfolio     = errors.New("investor already has a portfolio with this manager")
	ErrInvalidAddress         = errors.New("invalid wallet address for currency")
)

// IsError checks if the target error is present in the error chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
