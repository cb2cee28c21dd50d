// internal/domain/crypto_wallet.go
package domain

import "time"

// CryptoWallet is the deposit-address record provisioned for a portfolio
// funded by cryptocurrency. One per portfolio. The two address fields are
// named for their owners: the investor sends from InvestorSourceAddress,
// the platform receives at PlatformReceivingAddress.
type CryptoWallet struct {
	ID                       int64     `db:"id" json:"id"`
	PortfolioID              int64     `db:"portfolio_id" json:"portfolio_id"`
	Currency                 string    `db:"currency" json:"currency"` // e.g. "BTC", "ETH", "USDT"
	InvestorSourceAddress    string    `db:"investor_source_address" json:"investor_source_address"`
	PlatformReceivingAddress string    `db:"platform_receiving_address" json:"platform_receiving_address"`
	CreatedAt                time.Time `db:"created_at" json:"created_at"`
}

// NewCryptoWallet creates a wallet record for a portfolio.
func NewCryptoWallet(portfolioID int64, currency, investorSourceAddress, platformReceivingAddress string) *CryptoWallet {
	return &CryptoWallet{
		PortfolioID:              portfolioID,
		Currency:                 currency,
		InvestorSourceAddress:    investorSourceAddress,
		PlatformReceivingAddress: platformReceivingAddress,
		CreatedAt:                time.Now().UTC(),
	}
}
