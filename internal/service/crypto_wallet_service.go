// internal/service/crypto_wallet_service.go
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/util"
)

// WalletRequest carries the fields needed to provision a deposit-address
// record for a crypto-funded portfolio.
type WalletRequest struct {
	Currency                 string `json:"currency"`
	InvestorSourceAddress    string `json:"investor_source_address"`
	PlatformReceivingAddress string `json:"platform_receiving_address"`
}

// CryptoWalletProvisioner assigns a deposit-address record to a portfolio.
// Called once per portfolio by the portfolio service, inside its transaction.
type CryptoWalletProvisioner interface {
	Provision(ctx context.Context, q repository.DBExecutor, portfolioID int64, req WalletRequest) (*domain.CryptoWallet, error)
}

type cryptoWalletProvisioner struct {
	walletRepo repository.CryptoWalletRepository
}

// NewCryptoWalletProvisioner creates a new CryptoWalletProvisioner.
func NewCryptoWalletProvisioner(walletRepo repository.CryptoWalletRepository) CryptoWalletProvisioner {
	return &cryptoWalletProvisioner{walletRepo: walletRepo}
}

// Address shapes per supported currency. USDT accepts ERC-20 or TRC-20 form.
var (
	btcLegacyAddress = regexp.MustCompile(`^[13][1-9A-HJ-NP-Za-km-z]{25,34}$`)
	btcBech32Address = regexp.MustCompile(`^bc1[02-9ac-hj-np-z]{11,87}$`)
	ethAddress       = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	tronAddress      = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
)

// ValidAddress reports whether address has a plausible format for currency.
// This is a shape check, not an on-chain or checksum validation.
func ValidAddress(currency, address string) bool {
	switch strings.ToUpper(currency) {
	case "BTC":
		return btcLegacyAddress.MatchString(address) || btcBech32Address.MatchString(address)
	case "ETH":
		return ethAddress.MatchString(address)
	case "USDT":
		return ethAddress.MatchString(address) || tronAddress.MatchString(address)
	default:
		return false
	}
}

// SupportedCurrency reports whether the platform can provision a wallet for
// the given currency code.
func SupportedCurrency(currency string) bool {
	switch strings.ToUpper(currency) {
	case "BTC", "ETH", "USDT":
		return true
	default:
		return false
	}
}

// Provision creates the one wallet record a portfolio may have. Both
// addresses must match the currency's format; the unique constraint on
// portfolio_id turns a second provision into ErrDuplicateWallet.
func (s *cryptoWalletProvisioner) Provision(ctx context.Context, q repository.DBExecutor, portfolioID int64, req WalletRequest) (*domain.CryptoWallet, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !SupportedCurrency(currency) {
		return nil, fmt.Errorf("provision wallet: unsupported currency %q: %w", req.Currency, util.ErrInvalidInput)
	}
	if !ValidAddress(currency, req.InvestorSourceAddress) {
		return nil, fmt.Errorf("provision wallet: investor source address: %w", util.ErrInvalidAddress)
	}
	if !ValidAddress(currency, req.PlatformReceivingAddress) {
		return nil, fmt.Errorf("provision wallet: platform receiving address: %w", util.ErrInvalidAddress)
	}

	wallet := domain.NewCryptoWallet(portfolioID, currency, req.InvestorSourceAddress, req.PlatformReceivingAddress)
	if err := s.walletRepo.CreateWallet(ctx, q, wallet); err != nil {
		return nil, fmt.Errorf("provision wallet: %w", err)
	}
	return wallet, nil
}
