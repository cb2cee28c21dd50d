// internal/service/referral_service.go
package service

import (
	"context"
	"fmt"

	"investrack/internal/domain"
	"investrack/internal/repository"
	"investrack/internal/util"
	"investrack/pkg/db"
)

// ReferralService is the referral ledger. Bonus amounts are populated by the
// payment reconciler on the referred investor's first verified investment;
// operators settle the resulting credit here.
type ReferralService interface {
	// CreateReferral records that referrerID brought in referredID.
	CreateReferral(ctx context.Context, referrerID, referredID int64) (*domain.Referral, error)
	// Settle marks the referral paid out. Settling twice is not an error.
	Settle(ctx context.Context, referralID int64) (*domain.Referral, error)
	// ListUnsettled returns every referral still owed.
	ListUnsettled(ctx context.Context) ([]domain.Referral, error)
	// ListByInvestor returns referrals credited to an investor, optionally
	// filtered by settled state.
	ListByInvestor(ctx context.Context, investorID int64, settled *bool) ([]domain.Referral, error)
}

type referralService struct {
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	referralRepo repository.ReferralRepository
	investorRepo repository.InvestorRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewReferralService creates a new instance of ReferralService.
func NewReferralService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	referralRepo repository.ReferralRepository,
	investorRepo repository.InvestorRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) ReferralService {
	return &referralService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		referralRepo: referralRepo,
		investorRepo: investorRepo,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
	}
}

// CreateReferral resolves both investors and records the referral with a
// zero amount; the bonus is granted later by payment verification.
func (s *referralService) CreateReferral(ctx context.Context, referrerID, referredID int64) (*domain.Referral, error) {
	if referrerID == referredID {
		return nil, fmt.Errorf("create referral: investor cannot refer themselves: %w", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create referral: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create referral: transaction controller does not implement DBExecutor")
	}

	if _, err := s.investorRepo.GetInvestorByID(ctx, txExecutor, referrerID); err != nil {
		return nil, fmt.Errorf("create referral: referrer: %w", err)
	}
	if _, err := s.investorRepo.GetInvestorByID(ctx, txExecutor, referredID); err != nil {
		return nil, fmt.Errorf("create referral: referred: %w", err)
	}

	referral := domain.NewReferral(referrerID, referredID)
	if err := s.referralRepo.CreateReferral(ctx, txExecutor, referral); err != nil {
		return nil, fmt.Errorf("create referral: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create referral: failed to commit transaction: %w", err)
	}
	return referral, nil
}

// Settle flips settled to true. The UPDATE writes the same value on repeat
// calls, so settling twice leaves settled=true with no error and no
// duplicate row.
func (s *referralService) Settle(ctx context.Context, referralID int64) (*domain.Referral, error) {
	if err := s.referralRepo.Settle(ctx, s.dbExecutor, referralID); err != nil {
		return nil, fmt.Errorf("settle referral: %w", err)
	}
	referral, err := s.referralRepo.GetReferralByID(ctx, s.dbExecutor, referralID)
	if err != nil {
		return nil, fmt.Errorf("settle referral: failed to re-fetch referral %d: %w", referralID, err)
	}
	return referral, nil
}

// ListUnsettled returns every referral still owed.
func (s *referralService) ListUnsettled(ctx context.Context) ([]domain.Referral, error) {
	referrals, err := s.referralRepo.GetUnsettledReferrals(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list unsettled referrals: %w", err)
	}
	return referrals, nil
}

// ListByInvestor returns referrals credited to an investor.
func (s *referralService) ListByInvestor(ctx context.Context, investorID int64, settled *bool) ([]domain.Referral, error) {
	referrals, err := s.referralRepo.GetReferralsByReferrerID(ctx, s.dbExecutor, investorID, settled)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	return referrals, nil
}
